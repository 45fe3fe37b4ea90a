package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downChecker struct{}

func (downChecker) Healthy(context.Context) bool { return false }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		hc         HealthChecker
		wantStatus int
		wantBody   string
	}{
		{name: "healthy", hc: NewOkHealthChecker(), wantStatus: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "unhealthy", hc: downChecker{}, wantStatus: http.StatusServiceUnavailable, wantBody: `{"status":"unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			require.NoError(t, HealthHandler(tt.hc)(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
