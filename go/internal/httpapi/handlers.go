// Package httpapi exposes the JSON HTTP surface for leagues, teams, drafts
// and trades. The acting user comes from the X-User-ID header; in production
// that is set by the auth proxy in front of this service.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/draft/draft"
	"github.com/warroomhq/warroom/go/internal/draft/orchestrator"
	"github.com/warroomhq/warroom/go/internal/draft/pick"
	"github.com/warroomhq/warroom/go/internal/fantasyteam"
	"github.com/warroomhq/warroom/go/internal/leagues"
	"github.com/warroomhq/warroom/go/internal/player"
	"github.com/warroomhq/warroom/go/internal/roster"
	"github.com/warroomhq/warroom/go/internal/trade"
)

// Server wires the app layer into HTTP handlers.
type Server struct {
	Leagues *leagues.App
	Teams   *fantasyteam.App
	Players *player.App
	Rosters *roster.App
	Drafts  *draft.App
	Picks   *pick.App
	Trades  *trade.App
	Orch    *orchestrator.Orchestrator
}

// RegisterRoutes registers all API routes on the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/leagues", s.handleCreateLeague)
	mux.HandleFunc("GET /api/leagues/{id}", s.handleGetLeague)

	mux.HandleFunc("POST /api/teams", s.handleCreateTeam)
	mux.HandleFunc("PUT /api/teams/{id}/draft-position", s.handleSetDraftPosition)
	mux.HandleFunc("DELETE /api/teams/{id}", s.handleRemoveTeam)
	mux.HandleFunc("GET /api/teams/{id}/roster", s.handleGetRoster)
	mux.HandleFunc("GET /api/teams/{id}/trades", s.handleListTrades)

	mux.HandleFunc("GET /api/players/available", s.handleListAvailablePlayers)
	mux.HandleFunc("PUT /api/rosters/{id}/starter", s.handleSetStarter)

	mux.HandleFunc("POST /api/drafts", s.handleCreateDraft)
	mux.HandleFunc("POST /api/drafts/{id}/start", s.handleStartDraft)
	mux.HandleFunc("POST /api/drafts/{id}/pause", s.handlePauseDraft)
	mux.HandleFunc("POST /api/drafts/{id}/resume", s.handleResumeDraft)
	mux.HandleFunc("POST /api/drafts/{id}/cancel", s.handleCancelDraft)
	mux.HandleFunc("GET /api/drafts/{id}/state", s.handleGetDraftState)
	mux.HandleFunc("POST /api/drafts/{id}/picks", s.handleSubmitPick)

	mux.HandleFunc("POST /api/trades", s.handleProposeTrade)
	mux.HandleFunc("GET /api/trades/{id}", s.handleGetTrade)
	mux.HandleFunc("POST /api/trades/{id}/respond", s.handleRespondTrade)
}

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing X-User-ID header: %w", apperrors.ErrPermissionDenied)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid X-User-ID header: %w", apperrors.ErrPermissionDenied)
	}
	return id, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, apperrors.ErrNotFound)
	}
	return id, nil
}

func decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("invalid request body: %w", err)
	}
	return v, nil
}

func (s *Server) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	req, err := decode[leagues.CreateLeagueRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	league, err := s.Leagues.CreateLeague(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, league)
}

func (s *Server) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	league, err := s.Leagues.GetLeague(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	req, err := decode[fantasyteam.CreateFantasyTeamRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	team, err := s.Teams.CreateFantasyTeam(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (s *Server) handleSetDraftPosition(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := decode[struct {
		Position int `json:"position"`
	}](r)
	if err != nil {
		writeError(w, err)
		return
	}
	team, err := s.Teams.SetDraftPosition(r.Context(), teamID, body.Position, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleRemoveTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	removed, err := s.Teams.RemoveTeamFromDraft(r.Context(), teamID, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := s.Rosters.GetRosterByTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	sportID := r.URL.Query().Get("sport_id")
	if sportID == "" {
		writeError(w, fmt.Errorf("sport_id is required: %w", apperrors.ErrNotFound))
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	players, err := s.Players.ListAvailablePlayers(r.Context(), sportID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleSetStarter(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := decode[struct {
		Starter bool `json:"starter"`
	}](r)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := s.Rosters.SetStarter(r.Context(), entryID, body.Starter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := decode[draft.CreateDraftRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := s.Drafts.CreateDraft(r.Context(), req, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleStartDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	started, err := s.Drafts.StartDraft(r.Context(), draft.StartDraftRequest{DraftID: draftID, ActorID: actor})
	if err != nil {
		writeError(w, err)
		return
	}
	s.Orch.Wake()
	writeJSON(w, http.StatusOK, started)
}

func (s *Server) handlePauseDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	// Body is optional for pause
	_ = json.NewDecoder(r.Body).Decode(&body)

	paused, err := s.Drafts.PauseDraft(r.Context(), draft.PauseDraftRequest{DraftID: draftID, ActorID: actor, Reason: body.Reason})
	if err != nil {
		writeError(w, err)
		return
	}
	s.Orch.Wake()
	writeJSON(w, http.StatusOK, paused)
}

func (s *Server) handleResumeDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resumed, err := s.Drafts.ResumeDraft(r.Context(), draft.ResumeDraftRequest{DraftID: draftID, ActorID: actor})
	if err != nil {
		writeError(w, err)
		return
	}
	s.Orch.Wake()
	writeJSON(w, http.StatusOK, resumed)
}

func (s *Server) handleCancelDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cancelled, err := s.Drafts.CancelDraft(r.Context(), draft.CancelDraftRequest{DraftID: draftID, ActorID: actor})
	if err != nil {
		writeError(w, err)
		return
	}
	s.Orch.Wake()
	writeJSON(w, http.StatusOK, cancelled)
}

func (s *Server) handleGetDraftState(w http.ResponseWriter, r *http.Request) {
	draftID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	state, err := s.Drafts.GetDraftState(r.Context(), draftID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSubmitPick(w http.ResponseWriter, r *http.Request) {
	draftID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := decode[struct {
		TeamID   uuid.UUID `json:"team_id"`
		PlayerID uuid.UUID `json:"player_id"`
	}](r)
	if err != nil {
		writeError(w, err)
		return
	}
	committed, err := s.Picks.SubmitPick(r.Context(), pick.SubmitPickRequest{
		DraftID:  draftID,
		TeamID:   body.TeamID,
		PlayerID: body.PlayerID,
		ActorID:  actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.Orch.Wake()
	writeJSON(w, http.StatusCreated, committed)
}

func (s *Server) handleProposeTrade(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := decode[trade.ProposeTradeRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.ActorID = actor
	proposed, err := s.Trades.ProposeTrade(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proposed)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := s.Trades.GetTrade(r.Context(), tradeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleRespondTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := decode[trade.RespondTradeRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.TradeID = tradeID
	req.ActorID = actor
	resolved, err := s.Trades.RespondTrade(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	trades, err := s.Trades.ListTradesByTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}
