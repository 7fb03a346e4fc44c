package response

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	apperrors "chowpay/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "wrapped domain error keeps detail",
			err:        fmt.Errorf("%w: provider said no", apperrors.ErrTransferFailed),
			wantStatus: fiber.StatusBadGateway,
			wantCode:   "TRANSFER_FAILED",
			wantMsg:    apperrors.ErrTransferFailed.Error() + ": provider said no",
		},
		{
			name:       "plain error is hidden",
			err:        fmt.Errorf("pq: connection refused"),
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return DomainError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}
