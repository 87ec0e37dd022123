package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func TestHealthChecker_Check(t *testing.T) {
	tests := []struct {
		name       string
		checker    *HealthChecker
		wantStatus string
		wantDB     string
	}{
		{
			name:       "ledger reachable",
			checker:    NewHealthChecker(fakePinger{}),
			wantStatus: "healthy",
			wantDB:     "healthy",
		},
		{
			name:       "ledger down",
			checker:    NewHealthChecker(fakePinger{err: errors.New("connection refused")}),
			wantStatus: "unhealthy",
			wantDB:     "unhealthy: connection refused",
		},
		{
			name:       "memory ledger",
			checker:    NewHealthChecker(nil),
			wantStatus: "healthy",
			wantDB:     "not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.checker.Check(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, tt.wantDB, status.Checks["order_ledger"])
		})
	}
}

func TestHealthChecker_HealthHandler(t *testing.T) {
	h := NewHealthChecker(fakePinger{err: errors.New("down")})

	rec := httptest.NewRecorder()
	h.HealthHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
}
