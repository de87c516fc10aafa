package mlb

import (
	"fmt"

	"github.com/warroomhq/warroom/go/internal/sports/base"
)

// MLBPlugin implements the SportPlugin interface for MLB.
type MLBPlugin struct{}

func init() {
	if err := base.RegisterPlugin("mlb", &MLBPlugin{}); err != nil {
		panic(fmt.Sprintf("failed to register MLB plugin: %v", err))
	}
}

func (p *MLBPlugin) SportID() string {
	return "mlb"
}

func (p *MLBPlugin) PositionCodes() []string {
	return []string{"C", "1B", "2B", "3B", "SS", "OF", "DH", "SP", "RP", "P"}
}
