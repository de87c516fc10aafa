package player

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warroomhq/warroom/go/internal/models"
)

// PlayerRepository defines what the app layer needs from the repository
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	IsPlayerAvailable(ctx context.Context, id uuid.UUID) (bool, error)
	ListAvailablePlayers(ctx context.Context, sportID string, limit int) ([]models.Player, error)
	BestAvailable(ctx context.Context, sportID string) (*models.Player, error)
}

// App fronts the player availability store. The core only reads players here;
// the availability flag is flipped inside the pick and cancel transactions.
type App struct {
	repo PlayerRepository
}

func NewApp(repo PlayerRepository) *App {
	return &App{repo: repo}
}

func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func (a *App) IsPlayerAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.repo.IsPlayerAvailable(ctx, id)
}

func (a *App) ListAvailablePlayers(ctx context.Context, sportID string, limit int) ([]models.Player, error) {
	if limit <= 0 {
		limit = 50
	}
	players, err := a.repo.ListAvailablePlayers(ctx, sportID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	return players, nil
}

// BestAvailable returns the autopick candidate for the sport.
func (a *App) BestAvailable(ctx context.Context, sportID string) (*models.Player, error) {
	player, err := a.repo.BestAvailable(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get best available player: %w", err)
	}
	return player, nil
}
