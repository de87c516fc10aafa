package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	id        string
	positions []string
}

func (p stubPlugin) SportID() string         { return p.id }
func (p stubPlugin) PositionCodes() []string { return p.positions }

func TestRegisterPlugin(t *testing.T) {
	plugin := stubPlugin{id: "curling", positions: []string{"SKIP", "LEAD"}}
	require.NoError(t, RegisterPlugin("curling", plugin))

	got, err := GetPlugin("curling")
	require.NoError(t, err)
	require.Equal(t, "curling", got.SportID())

	require.Error(t, RegisterPlugin("curling", plugin), "duplicate key must be rejected")
	require.Error(t, RegisterPlugin("", plugin))
	require.Contains(t, RegisteredSports(), "curling")
}

func TestGetPlugin_Unregistered(t *testing.T) {
	_, err := GetPlugin("jai-alai")
	require.Error(t, err)
}

func TestKnownPosition(t *testing.T) {
	require.NoError(t, RegisterPlugin("darts", stubPlugin{id: "darts", positions: []string{"THROWER"}}))

	require.True(t, KnownPosition("darts", "THROWER"))
	require.False(t, KnownPosition("darts", "GOALIE"))
	require.False(t, KnownPosition("cricket", "BOWLER"), "unregistered sport is never a known position")
}
