package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casafile/api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRouter creates a test Gin router.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHealthHandler_Health(t *testing.T) {
	handler := NewHealthHandler(session.NewStore(0), "test")

	router := setupTestRouter()
	router.GET("/health", handler.Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, HealthResponse{Status: "healthy"}, response)
}

func TestHealthHandler_Ready(t *testing.T) {
	store := session.NewStore(0)
	_, err := store.Create()
	require.NoError(t, err)
	_, err = store.Create()
	require.NoError(t, err)

	handler := NewHealthHandler(store, "test")

	router := setupTestRouter()
	router.GET("/health/ready", handler.Ready)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ReadyResponse
	err = json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "ready", response.Status)
	assert.Equal(t, 2, response.Sessions)
}

func TestHealthHandler_Info(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		startTime   time.Time
		checkUptime bool
	}{
		{
			name:        "returns API info with development environment",
			env:         "development",
			startTime:   time.Now().Add(-2 * time.Hour),
			checkUptime: true,
		},
		{
			name:        "returns API info with production environment",
			env:         "production",
			startTime:   time.Now().Add(-24 * time.Hour),
			checkUptime: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &HealthHandler{
				store:     session.NewStore(0),
				startTime: tt.startTime,
				env:       tt.env,
			}

			router := setupTestRouter()
			router.GET("/api/v1/info", handler.Info)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var response InfoResponse
			err := json.NewDecoder(w.Body).Decode(&response)
			require.NoError(t, err)

			assert.Equal(t, APIVersion, response.Version)
			assert.Equal(t, tt.env, response.Environment)

			if tt.checkUptime {
				assert.NotEmpty(t, response.Uptime)
			}
		})
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "formats seconds only",
			duration: 45 * time.Second,
			expected: "0h 0m 45s",
		},
		{
			name:     "formats minutes and seconds",
			duration: 5*time.Minute + 30*time.Second,
			expected: "0h 5m 30s",
		},
		{
			name:     "formats hours, minutes and seconds",
			duration: 2*time.Hour + 15*time.Minute + 45*time.Second,
			expected: "2h 15m 45s",
		},
		{
			name:     "formats days when over 24 hours",
			duration: 26*time.Hour + 5*time.Minute,
			expected: "1d 2h 5m 0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatUptime(tt.duration))
		})
	}
}
