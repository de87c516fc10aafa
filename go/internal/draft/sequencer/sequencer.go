// Package sequencer computes whose turn it is in a snake draft. It is a pure
// function of the draft-order snapshot and the overall pick counter, so any
// two callers looking at the same committed draft state agree on the team on
// the clock.
package sequencer

import (
	"fmt"

	"github.com/google/uuid"
)

// Turn describes a single pick slot in snake order.
type Turn struct {
	TeamID      uuid.UUID
	Round       int // 1-based
	Pick        int // 1-based slot within the round
	OverallPick int // 1-based across the draft
}

// TurnAt returns the turn for the given overall pick. draftOrder is the
// order snapshot taken at draft start; it is never renumbered mid-draft,
// so a team removed before the start simply does not appear in it.
//
// Odd rounds run through draftOrder front to back, even rounds back to
// front: the team picking last in round one picks first in round two.
func TurnAt(draftOrder []uuid.UUID, overallPick int) (Turn, error) {
	n := len(draftOrder)
	if n == 0 {
		return Turn{}, fmt.Errorf("draft order is empty")
	}
	if overallPick < 1 {
		return Turn{}, fmt.Errorf("overall pick %d out of range", overallPick)
	}

	round := (overallPick-1)/n + 1
	pick := overallPick - (round-1)*n

	idx := pick - 1
	if round%2 == 0 {
		idx = n - pick
	}

	return Turn{
		TeamID:      draftOrder[idx],
		Round:       round,
		Pick:        pick,
		OverallPick: overallPick,
	}, nil
}

// OnClock returns the team holding the given overall pick.
func OnClock(draftOrder []uuid.UUID, overallPick int) (uuid.UUID, error) {
	turn, err := TurnAt(draftOrder, overallPick)
	if err != nil {
		return uuid.Nil, err
	}
	return turn.TeamID, nil
}

// PicksForTeam returns every overall pick held by teamID in a draft of
// totalPicks picks. Useful for pre-draft previews and tests.
func PicksForTeam(draftOrder []uuid.UUID, totalPicks int, teamID uuid.UUID) ([]int, error) {
	var picks []int
	for p := 1; p <= totalPicks; p++ {
		turn, err := TurnAt(draftOrder, p)
		if err != nil {
			return nil, err
		}
		if turn.TeamID == teamID {
			picks = append(picks, p)
		}
	}
	return picks, nil
}
