package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/session"
	"go.uber.org/zap"
)

func TestRefreshUpdatesCachedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]model.User{
			"user": {ID: "u1", Name: "Анна", Role: model.RoleStudent},
		})
	}))
	defer srv.Close()

	sessions := session.NewManager()
	sessions.Set(7, "tok", &model.User{ID: "u1", Name: "Старое имя", Role: model.RoleStudent})
	svc := NewAuthService(gateway.NewClient(srv.URL), sessions, zap.NewNop())

	user, err := svc.Refresh(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Анна", user.Name)
	assert.Equal(t, "Анна", sessions.Get(7).User.Name)
}

func TestRefreshSurfacesExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
	}))
	defer srv.Close()

	sessions := session.NewManager()
	sessions.Set(7, "dead", &model.User{ID: "u1"})
	svc := NewAuthService(gateway.NewClient(srv.URL), sessions, zap.NewNop())

	_, err := svc.Refresh(context.Background(), 7)

	require.Error(t, err)
	apiErr, ok := gateway.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestRefreshWithoutSession(t *testing.T) {
	svc := NewAuthService(gateway.NewClient("http://unused"), session.NewManager(), zap.NewNop())

	_, err := svc.Refresh(context.Background(), 7)

	require.Error(t, err)
}
