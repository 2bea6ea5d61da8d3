package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rabbits_den/internal/model"
	authServ "rabbits_den/internal/service/auth"
)

type fakeAuth struct{}

func (fakeAuth) Register(_ context.Context, u *model.User) (*model.AuthData, error) {
	if u.Login == "taken" {
		return nil, authServ.ErrLoginTaken
	}
	return &model.AuthData{SessionID: "sid", AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (fakeAuth) Login(_ context.Context, u *model.User) (*model.AuthData, error) {
	if u.Password != "right" {
		return nil, authServ.ErrInvalidCredentials
	}
	return &model.AuthData{SessionID: "sid", AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (fakeAuth) Refresh(_ context.Context, d *model.AuthData) (string, error) {
	if d.SessionID != "sid" || d.RefreshToken != "refresh" {
		return "", authServ.ErrInvalidRefreshToken
	}
	return "access2", nil
}

func (fakeAuth) Logout(_ context.Context, d *model.AuthData) error {
	if d.SessionID != "sid" || d.RefreshToken != "refresh" {
		return authServ.ErrInvalidRefreshToken
	}
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: fakeAuth{}})

	w := httptest.NewRecorder()
	h.Register(w, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"login":"bunny","password":"x"}`)))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"access_token":"access"}`, w.Body.String())
	assert.Len(t, w.Result().Cookies(), 2)

	w = httptest.NewRecorder()
	h.Register(w, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"login":"taken","password":"x"}`)))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"login":"bunny","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: fakeAuth{}})

	r := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	r.AddCookie(&http.Cookie{Name: refreshCookie, Value: "refresh"})
	w := httptest.NewRecorder()
	h.Refresh(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"access2"}`, w.Body.String())

	r = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	w = httptest.NewRecorder()
	h.Refresh(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: fakeAuth{}})

	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	r.AddCookie(&http.Cookie{Name: refreshCookie, Value: "refresh"})
	w := httptest.NewRecorder()
	h.Logout(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Без refresh токена чужую сессию не закрыть
	r = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	w = httptest.NewRecorder()
	h.Logout(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	r.AddCookie(&http.Cookie{Name: refreshCookie, Value: "stolen"})
	w = httptest.NewRecorder()
	h.Logout(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
