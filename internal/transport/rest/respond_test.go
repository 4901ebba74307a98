package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/service/scan"
)

func TestRespondError_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"superseded scan", fmt.Errorf("analyze: %w", scan.ErrSuperseded), http.StatusConflict, msgSuperseded},
		{"cancelled checkout", fmt.Errorf("checkout: %w", context.Canceled), statusClientClosed, msgCancelled},
		{"cancelled chat", context.Canceled, statusClientClosed, msgCancelled},
		{"deadline", fmt.Errorf("chat: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, msgTimeout},
		{"blocked", domain.NewUpstreamError(domain.ErrContentBlocked, "blocked"), http.StatusBadRequest, "blocked"},
		{"no profile", domain.ErrNoProfile, http.StatusBadRequest, msgNoProfile},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, msgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)

			respondError(rec, req, slog.New(slog.NewTextHandler(io.Discard, nil)), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}
