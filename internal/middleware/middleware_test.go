package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/nano-link/backend/internal/metrics"
	"github.com/anonto42/nano-link/backend/internal/repositories"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/anonto42/nano-link/backend/internal/testutil"
	"github.com/labstack/echo/v4"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	sessions map[string]*Session
	err      error
}

func (r stubResolver) Resolve(_ context.Context, token string) (*Session, error) {
	if r.err != nil {
		return nil, r.err
	}
	if s, ok := r.sessions[token]; ok {
		return s, nil
	}
	return nil, ErrNoSession
}

func TestAuthenticate(t *testing.T) {
	resolver := stubResolver{sessions: map[string]*Session{
		"good": {UserID: "u1", Email: "u1@example.com", Name: "U1"},
	}}

	tests := []struct {
		name     string
		header   string
		resolver SessionResolver
		wantCode int
	}{
		{"missing header", "", resolver, http.StatusUnauthorized},
		{"wrong scheme", "Basic good", resolver, http.StatusUnauthorized},
		{"unknown token", "Bearer nope", resolver, http.StatusUnauthorized},
		{"resolver failure", "Bearer good", stubResolver{err: errors.New("db down")}, http.StatusUnauthorized},
		{"valid token", "Bearer good", resolver, http.StatusOK},
		{"case-insensitive scheme", "bearer good", resolver, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var got *Session
			handler := Authenticate(tt.resolver)(func(c echo.Context) error {
				got = CurrentSession(c)
				return c.NoContent(http.StatusOK)
			})
			err := handler(c)

			if tt.wantCode == http.StatusOK {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, "u1", got.UserID)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantCode, he.Code)
			assert.Equal(t, "Unauthorized", he.Message)
			assert.Nil(t, got)
		})
	}
}

func TestJWTResolver(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	tokens := services.NewTokenManager("test-secret", time.Hour)
	resolver := NewJWTResolver(tokens, repositories.NewUserRepository(db))
	ctx := context.Background()

	token, err := tokens.Issue(alice)
	require.NoError(t, err)

	session, err := resolver.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, &Session{UserID: alice.ID, Email: alice.Email, Name: "alice"}, session)

	_, err = resolver.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrNoSession)

	other, err := services.NewTokenManager("other-secret", time.Hour).Issue(alice)
	require.NoError(t, err)
	_, err = resolver.Resolve(ctx, other)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, db.Delete(alice).Error)
	_, err = resolver.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/items/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return c.NoContent(http.StatusOK)
	})

	okBefore := promtest.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "200"))
	notFoundBefore := promtest.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "404"))

	for _, path := range []string{"/items/1", "/items/2", "/items/missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, promtest.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "200")))
	assert.Equal(t, notFoundBefore+1, promtest.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "404")))
}
