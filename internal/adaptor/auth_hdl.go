package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"meditrack/internal/dto/request"
	"meditrack/internal/dto/response"
	"meditrack/internal/usecase"
	"meditrack/pkg/oauth"
	"meditrack/pkg/utils"
)

const stateCookieName = "meditrack_oauth_state"

type AuthHandler struct {
	service usecase.AuthService
	google  *oauth.GoogleProvider
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, google *oauth.GoogleProvider, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		google:  google,
		config:  config,
		log:     log,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, session, err := h.service.Signup(r.Context(), req.Username, req.Password, h.clientInfo(r))
	if err != nil {
		respondServiceError(w, h.log, err, "signup")
		return
	}

	// Signup langsung login — session bisa nil kalau pembuatannya gagal,
	// user tinggal login manual
	if session != nil {
		h.setSessionCookie(w, session.Token.String())
	}

	utils.ResponseCreated(w, "Account created successfully", response.UserToResponse(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, session, err := h.service.Login(r.Context(), req.Username, req.Password, h.clientInfo(r))
	if err != nil {
		respondServiceError(w, h.log, err, "login")
		return
	}

	h.setSessionCookie(w, session.Token.String())
	utils.ResponseSuccess(w, "Login successful", response.UserToResponse(user))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.extractToken(r)
	if token == "" {
		// Tidak ada session berarti sudah logged out
		h.clearSessionCookie(w)
		utils.ResponseSuccess(w, "Logged out", nil)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		respondServiceError(w, h.log, err, "logout")
		return
	}

	h.clearSessionCookie(w)
	utils.ResponseSuccess(w, "Logged out", nil)
}

// CurrentUser handles GET /api/auth/user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.log, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", response.CurrentUserToResponse(user))
}

// GoogleLogin handles GET /auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		utils.ResponseInternalError(w, "Google sign-in is not configured on this server")
		return
	}

	state := utils.GenerateState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusFound)
}

// GoogleCallback handles GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		utils.ResponseInternalError(w, "Google sign-in is not configured on this server")
		return
	}

	// Verifikasi state cookie dulu (CSRF)
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.log.Warn("OAuth callback with invalid state")
		utils.ResponseBadRequest(w, "Invalid OAuth state", nil)
		return
	}

	// State cookie sekali pakai
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.ResponseBadRequest(w, "Missing authorization code", nil)
		return
	}

	googleUser, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.log.Error("OAuth code exchange failed", zap.Error(err))
		utils.ResponseInternalError(w, "Google sign-in failed")
		return
	}

	_, session, err := h.service.LoginWithGoogle(r.Context(), googleUser.Subject, h.clientInfo(r))
	if err != nil {
		respondServiceError(w, h.log, err, "google login")
		return
	}

	h.setSessionCookie(w, session.Token.String())
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) clientInfo(r *http.Request) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
	}
}

// extractToken membaca session token dari cookie, fallback ke
// Authorization header untuk API client tanpa cookie jar.
func (h *AuthHandler) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(h.config.Session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.config.Session.ExpiryHours) * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
