package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warroomhq/warroom/go/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
		{apperrors.ErrNotYourTurn, http.StatusConflict, "not_your_turn"},
		{apperrors.ErrPlayerUnavailable, http.StatusConflict, "player_unavailable"},
		{apperrors.ErrStaleWrite, http.StatusConflict, "stale_write"},
		{apperrors.ErrInvalidState, http.StatusConflict, "invalid_state"},
		{apperrors.ErrInvalidAsset, http.StatusUnprocessableEntity, "invalid_asset"},
		{apperrors.ErrTradeExpired, http.StatusGone, "trade_expired"},
		{errors.New("pool closed"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			// Wrapped errors must classify the same as the bare sentinel.
			status, kind := statusFor(fmt.Errorf("context: %w", tc.err))
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.kind, kind)
		})
	}
}
