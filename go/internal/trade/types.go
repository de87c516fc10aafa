package trade

import (
	"github.com/google/uuid"

	"github.com/warroomhq/warroom/go/internal/models"
)

// ProposeTradeRequest offers players from the proposing team in exchange for
// players from the counterparty team. Either side of the swap may be empty,
// but not both.
type ProposeTradeRequest struct {
	LeagueID         uuid.UUID   `json:"league_id"`
	ProposingTeamID  uuid.UUID   `json:"proposing_team_id"`
	CounterpartyID   uuid.UUID   `json:"counterparty_team_id"`
	OfferedPlayers   []uuid.UUID `json:"offered_players"`
	RequestedPlayers []uuid.UUID `json:"requested_players"`
	ActorID          uuid.UUID   `json:"actor_id"`
	ExpiresInSec     int         `json:"expires_in_sec,omitempty"` // 0 means the default TTL
}

// RespondTradeRequest resolves a pending trade.
type RespondTradeRequest struct {
	TradeID  uuid.UUID            `json:"trade_id"`
	ActorID  uuid.UUID            `json:"actor_id"`
	Decision models.TradeDecision `json:"decision"`
}
