package nhl

import (
	"fmt"

	"github.com/warroomhq/warroom/go/internal/sports/base"
)

// NHLPlugin implements the SportPlugin interface for the NHL.
type NHLPlugin struct{}

func init() {
	if err := base.RegisterPlugin("nhl", &NHLPlugin{}); err != nil {
		panic(fmt.Sprintf("failed to register NHL plugin: %v", err))
	}
}

func (p *NHLPlugin) SportID() string {
	return "nhl"
}

func (p *NHLPlugin) PositionCodes() []string {
	return []string{"C", "LW", "RW", "D", "G", "UTIL"}
}
