package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	dto "rabbits_den/internal/api/dto/auth"
	"rabbits_den/internal/converter"
	"rabbits_den/internal/model"
	"rabbits_den/internal/service"
	authServ "rabbits_den/internal/service/auth"
	"rabbits_den/pkg/req"
	"rabbits_den/pkg/resp"
)

const (
	sessionCookie = "session_id"
	refreshCookie = "refresh_token"
	cookieMaxAge  = 30 * 24 * 60 * 60 // 30 дней
)

type HandlerDeps struct {
	Serv service.AuthService
	Log  *zap.Logger
}

type Handler struct {
	serv service.AuthService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

// Register создаёт пользователя, открывает сессию,
// session_id и refresh_token отдает в cookies, access_token в теле
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Register(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	if err != nil {
		switch {
		case errors.Is(err, authServ.ErrInvalidInput):
			resp.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authServ.ErrLoginTaken):
			resp.WriteError(w, http.StatusConflict, err.Error())
		default:
			h.log.Error("register failed", zap.Error(err))
			resp.WriteError(w, http.StatusInternalServerError, "register failed")
		}
		return
	}

	setSessionCookies(w, data)
	resp.WriteJSONResponse(w, http.StatusCreated, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Login открывает новую сессию
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(r.Context(), converter.LoginRequestToUserModel(&requestBody))
	if err != nil {
		if !errors.Is(err, authServ.ErrInvalidCredentials) {
			h.log.Error("login failed", zap.Error(err))
		}
		resp.WriteError(w, http.StatusUnauthorized, "login failed")
		return
	}

	setSessionCookies(w, data)
	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Refresh выдает новый access_token по session_id и refresh_token из cookies
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	data, ok := sessionFromCookies(w, r)
	if !ok {
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), data)
	if err != nil {
		if !errors.Is(err, authServ.ErrInvalidRefreshToken) {
			h.log.Error("refresh failed", zap.Error(err))
		}
		resp.WriteError(w, http.StatusUnauthorized, "refresh failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}

// Logout закрывает сессию по session_id и refresh_token из cookies
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	data, ok := sessionFromCookies(w, r)
	if !ok {
		return
	}

	if err := h.serv.Logout(r.Context(), data); err != nil {
		if errors.Is(err, authServ.ErrInvalidRefreshToken) {
			resp.WriteError(w, http.StatusUnauthorized, "logout failed")
			return
		}
		h.log.Error("logout failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	setCookie(w, sessionCookie, "", -1)
	setCookie(w, refreshCookie, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// sessionFromCookies при отсутствии cookie сам пишет 401
func sessionFromCookies(w http.ResponseWriter, r *http.Request) (*model.AuthData, bool) {
	session, err := r.Cookie(sessionCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return nil, false
	}
	refresh, err := r.Cookie(refreshCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no refresh_token cookie")
		return nil, false
	}
	return &model.AuthData{SessionID: session.Value, RefreshToken: refresh.Value}, true
}

func setSessionCookies(w http.ResponseWriter, data *model.AuthData) {
	setCookie(w, sessionCookie, data.SessionID, cookieMaxAge)
	setCookie(w, refreshCookie, data.RefreshToken, cookieMaxAge)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}
