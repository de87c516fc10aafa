package nba

import (
	"fmt"

	"github.com/warroomhq/warroom/go/internal/sports/base"
)

// NBAPlugin implements the SportPlugin interface for the NBA.
type NBAPlugin struct{}

func init() {
	if err := base.RegisterPlugin("nba", &NBAPlugin{}); err != nil {
		panic(fmt.Sprintf("failed to register NBA plugin: %v", err))
	}
}

func (p *NBAPlugin) SportID() string {
	return "nba"
}

func (p *NBAPlugin) PositionCodes() []string {
	return []string{"PG", "SG", "SF", "PF", "C", "G", "F", "UTIL"}
}
