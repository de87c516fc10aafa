package nfl

import (
	"fmt"

	"github.com/warroomhq/warroom/go/internal/sports/base"
)

// NFLPlugin implements the SportPlugin interface for the NFL.
type NFLPlugin struct{}

// init registers the NFL plugin with the base registry.
func init() {
	if err := base.RegisterPlugin("nfl", &NFLPlugin{}); err != nil {
		panic(fmt.Sprintf("failed to register NFL plugin: %v", err))
	}
}

func (p *NFLPlugin) SportID() string {
	return "nfl"
}

func (p *NFLPlugin) PositionCodes() []string {
	return []string{"QB", "RB", "WR", "TE", "K", "DST", "FLEX"}
}
