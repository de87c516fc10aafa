// Package apperrors defines the error kinds shared by the draft coordinator
// and trade negotiator. Callers classify failures with errors.Is; packages
// wrap these with fmt.Errorf("...: %w", ...) to add context.
package apperrors

import "errors"

var (
	// ErrPermissionDenied - a non-commissioner attempted a privileged operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidState - the operation is illegal for the current status.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound - the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotYourTurn - a pick was submitted by a team that is not on the clock.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrPlayerUnavailable - the player has already been drafted or claimed.
	ErrPlayerUnavailable = errors.New("player unavailable")

	// ErrInvalidAsset - a trade references a player not owned by the stated
	// team, or the offered sets overlap.
	ErrInvalidAsset = errors.New("invalid trade asset")

	// ErrTradeExpired - the trade proposal is past its expiry.
	ErrTradeExpired = errors.New("trade expired")

	// ErrStaleWrite - lost a concurrency race against another committed
	// write. Safe to refresh and retry for user picks; autopick callers must
	// treat it as a no-op instead.
	ErrStaleWrite = errors.New("stale write")
)
