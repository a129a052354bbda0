package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/index-create7/self-health-mis/internal/auth"
	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/middleware"
	"github.com/index-create7/self-health-mis/internal/telemetry/metrics"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"
	"github.com/index-create7/self-health-mis/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=accounts_test

type accountsRepo interface {
	Register(ctx context.Context, username, password string) (*Account, error)
	VerifyCredentials(ctx context.Context, username, password string) (int, error)
	GetProfile(ctx context.Context, accountID int) (*Profile, error)
	UpdateProfile(ctx context.Context, profile Profile) error
}

type authService interface {
	Login(ctx context.Context, accountID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	repo        accountsRepo
	authService authService
}

func NewHandler(repo accountsRepo, authService authService) *Handler {
	return &Handler{
		repo:        repo,
		authService: authService,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
	metricsManager *metrics.Manager,
) {
	authSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	authSubrouter.
		HandleFunc("/register", handler.handleRegister).
		Methods("POST", "OPTIONS").Name("register")
	authSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	authSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// rate limit the auth endpoints to prevent abuse
	authSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
	authSubrouter.Use(middleware.Cors())

	profileSubrouter := mainRouter.PathPrefix("/profile").Subrouter()
	profileSubrouter.
		HandleFunc("", handler.handleGetProfile).
		Methods("GET", "OPTIONS").Name("profile-get")
	profileSubrouter.
		HandleFunc("", handler.handleUpdateProfile).
		Methods("PUT", "OPTIONS").Name("profile-update")
	profileSubrouter.Use(middleware.Cors())
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func credentialsFromRequest(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return credentialsRequest{}, fmt.Errorf("unmarshal json params: %w", err)
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return credentialsRequest{}, fmt.Errorf("parse form: %w", err)
	}
	return credentialsRequest{
		Username: r.Form.Get("username"),
		Password: r.Form.Get("password"),
	}, nil
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	req, err := credentialsFromRequest(r)
	if err != nil {
		log.Errorf("register: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	account, err := handler.repo.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case fitness.IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUsernameTaken):
			http.Error(w, "username already taken", http.StatusConflict)
		default:
			log.Errorf("register failed for [%s]: %s", req.Username, err)
			http.Error(w, "register failed", http.StatusInternalServerError)
		}
		return
	}

	accountJson, err := json.Marshal(account)
	if err != nil {
		log.Errorf("failed to marshal registered account: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new account registered: %s", account.Username)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, accountJson, http.StatusCreated)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	req, err := credentialsFromRequest(r)
	if err != nil {
		log.Errorf("login: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	accountID, err := handler.repo.VerifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || fitness.IsValidationError(err) {
			log.Tracef("failed login attempt for user: %s", req.Username)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed for [%s]: %s", req.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	token, err := handler.authService.Login(ctx, accountID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Tracef("new login success for account %d", accountID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s"}`, token))
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(auth.TokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.authService.Logout(ctx, authToken); err != nil {
		log.Tracef("logout failed: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Printf("logout for [%s] success", authToken)
	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.getprofile")
	defer span.End()

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	profile, err := handler.repo.GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get profile of account %d: %s", accountID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "failed to marshal profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusOK)
}

func (handler *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.updateprofile")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}
	profile.AccountID = accountID

	if err := handler.repo.UpdateProfile(ctx, profile); err != nil {
		switch {
		case fitness.IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrProfileNotFound):
			http.Error(w, "profile not found", http.StatusNotFound)
		default:
			log.Errorf("failed to update profile of account %d: %s", accountID, err)
			http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteTextResponseOK(w, "updated")
}
