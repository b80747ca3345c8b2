package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/application"
)

const sessionCookieName = "session_token"

type accountService interface {
	Signup(ctx context.Context, input application.SignupInput) (application.User, error)
}

type authService interface {
	Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error)
	RevokeSession(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (application.Principal, error)
}

// AuthHandler serves signup, signin, session status and signout.
type AuthHandler struct {
	accounts      accountService
	service       authService
	secureCookies bool
	responder     responder
	logger        *slog.Logger
}

func NewAuthHandler(accounts accountService, service authService, secureCookies bool, logger *slog.Logger) *AuthHandler {
	base := defaultLogger(logger)
	return &AuthHandler{
		accounts:      accounts,
		service:       service,
		secureCookies: secureCookies,
		responder:     newResponder(base),
		logger:        base,
	}
}

func (h *AuthHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AuthHandler", operation, attrs...)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.accounts == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log(r.Context(), "Signup", "error_kind", "bad_request").InfoContext(r.Context(), "failed to decode signup request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Signup", "role", req.Role)

	user, err := h.accounts.Signup(r.Context(), req.input())
	if err != nil {
		logFailure(r.Context(), logger, "signup rejected", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "account registered", "user_id", user.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, signupResponse{
		Message:    "Account created",
		User:       toUserDTO(user),
		RedirectTo: signinPath,
	})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log(r.Context(), "Signin", "error_kind", "bad_request").InfoContext(r.Context(), "failed to decode signin request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	logger := h.log(r.Context(), "Signin", "email", email)

	result, err := h.service.Authenticate(r.Context(), application.AuthenticateParams{
		Email:       email,
		Password:    req.Password,
		Fingerprint: r.UserAgent(),
	})
	if err != nil {
		logFailure(r.Context(), logger, "authentication rejected", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.setSessionCookie(w, result.Session.Token, result.Session.ExpiresAt)
	w.Header().Set("X-Session-Token", result.Session.Token)

	logger.With("user_id", result.User.ID).InfoContext(r.Context(), "user authenticated")

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, loginResponse{
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt.UTC().Format(time.RFC3339Nano),
		User:      toUserDTO(result.User),
	})
}

// Session reports whether the request carries a live session. Rejected or
// missing tokens yield "unauthenticated" with status 200.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token := extractTokenFromRequest(r)
	if token == "" {
		h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Status: "unauthenticated"})
		return
	}

	logger := h.log(r.Context(), "Session")
	principal, err := h.service.ValidateSession(r.Context(), token)
	if err != nil {
		if isAuthFailure(err) {
			logger.DebugContext(r.Context(), "session not active", "error_kind", application.ErrorKind(err))
			h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Status: "unauthenticated"})
			return
		}
		logFailure(r.Context(), logger, "session lookup failed", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	user := principalDTO(principal)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Status: "authenticated", User: &user})
}

// Signout revokes the current session and clears the cookie. Unknown tokens
// are treated as already signed out.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token := extractTokenFromRequest(r)
	if token == "" {
		h.log(r.Context(), "Signout", "error_kind", "unauthorized").InfoContext(r.Context(), "missing session token for signout")
		h.responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{
			ErrorCode:  "AUTH_SESSION_EXPIRED",
			Message:    errMissingSessionToken.Error(),
			RedirectTo: signinPath,
		})
		return
	}

	logger := h.log(r.Context(), "Signout", "token_present", true)

	if err := h.service.RevokeSession(r.Context(), token); err != nil && !errors.Is(err, application.ErrInvalidCredentials) {
		logFailure(r.Context(), logger, "failed to revoke session", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.clearSessionCookie(w)
	logger.InfoContext(r.Context(), "session revoked")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	Position        string `json:"position"`
	Expertise       string `json:"expertise"`
	Experience      string `json:"experience"`
}

func (r signupRequest) input() application.SignupInput {
	return application.SignupInput{
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Role:            application.Role(r.Role),
		Phone:           r.Phone,
		Company:         r.Company,
		Position:        r.Position,
		Expertise:       r.Expertise,
		Experience:      r.Experience,
	}
}

type userDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Position   string `json:"position,omitempty"`
	Expertise  string `json:"expertise,omitempty"`
	Experience string `json:"experience,omitempty"`
}

func toUserDTO(user application.User) userDTO {
	return userDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		Phone:      user.Phone,
		Company:    user.Company,
		Position:   user.Position,
		Expertise:  user.Expertise,
		Experience: user.Experience,
	}
}

func principalDTO(principal application.Principal) userDTO {
	return userDTO{
		ID:    principal.UserID,
		Name:  principal.Name,
		Email: principal.Email,
		Role:  string(principal.Role),
	}
}

type signupResponse struct {
	Message    string  `json:"message"`
	User       userDTO `json:"user"`
	RedirectTo string  `json:"redirect_to"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expires_at"`
	User      userDTO `json:"user"`
}

type sessionResponse struct {
	Status string   `json:"status"`
	User   *userDTO `json:"user,omitempty"`
}

func isAuthFailure(err error) bool {
	return errors.Is(err, application.ErrUnauthorized) ||
		errors.Is(err, application.ErrInvalidCredentials) ||
		errors.Is(err, application.ErrSessionExpired) ||
		errors.Is(err, application.ErrSessionRevoked)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}
	if !expires.IsZero() {
		cookie.Expires = expires.UTC()
	}
	http.SetCookie(w, cookie)
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func extractTokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		const prefix = "Bearer "
		if strings.HasPrefix(header, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(header, prefix))
		}
	}
	if header := strings.TrimSpace(r.Header.Get("X-Session-Token")); header != "" {
		return header
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
