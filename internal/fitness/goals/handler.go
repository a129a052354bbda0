package goals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/index-create7/self-health-mis/internal/auth"
	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"
	"github.com/index-create7/self-health-mis/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=goals_mocks_test.go -package=goals_test

type goalsRepo interface {
	Add(ctx context.Context, goal Goal) (*Goal, error)
	Get(ctx context.Context, id, accountID int) (*Goal, error)
	List(ctx context.Context, params GoalParams) ([]Goal, error)
	SetTarget(ctx context.Context, goalID, accountID int, target float64) (bool, error)
	Delete(ctx context.Context, goalID, accountID int) error
}

type reconciler interface {
	ReconcileAccount(ctx context.Context, accountID int) error
}

type AddGoalRequest struct {
	Type        string    `json:"type"`
	TargetValue float64   `json:"targetValue"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

type SetTargetRequest struct {
	TargetValue float64 `json:"targetValue"`
}

type SetTargetResponse struct {
	UpdatedID int `json:"updatedId"`
}

type DeleteGoalResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListGoalsResponse struct {
	Goals []Goal `json:"goals"`
	Total int    `json:"total"`
}

type Handler struct {
	repo       goalsRepo
	reconciler reconciler
}

func NewHandler(repo goalsRepo, reconciler reconciler) *Handler {
	return &Handler{
		repo:       repo,
		reconciler: reconciler,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.add")
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

	var req AddGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	goalType, err := ParseGoalType(req.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	addedGoal, err := handler.repo.Add(ctx, Goal{
		AccountID:   accountID,
		Type:        goalType,
		TargetValue: req.TargetValue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		if fitness.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add goal [%s] for account %d: %s", goalType, accountID, err)
		http.Error(w, "error, failed to add goal", http.StatusInternalServerError)
		return
	}

	// pick up records logged before the goal existed
	if err := handler.reconciler.ReconcileAccount(ctx, accountID); err != nil {
		log.Errorf("goal %d added, initial reconciliation failed: %s", addedGoal.ID, err)
	} else if refreshed, err := handler.repo.Get(ctx, addedGoal.ID, accountID); err == nil {
		addedGoal = refreshed
	}

	addedGoalJson, err := json.Marshal(addedGoal)
	if err != nil {
		log.Errorf("failed to marshal added goal: %s", err)
		http.Error(w, "error, failed to add goal", http.StatusInternalServerError)
		return
	}

	log.Debugf("new goal added: %s", addedGoalJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedGoalJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	includeCompleted := false
	if completedStr := r.URL.Query().Get("include_completed"); completedStr != "" {
		var err error
		includeCompleted, err = strconv.ParseBool(completedStr)
		if err != nil {
			http.Error(w, "failed to parse include_completed param", http.StatusBadRequest)
			return
		}
	}

	found, err := handler.repo.List(ctx, GoalParams{
		AccountID:        accountID,
		IncludeCompleted: includeCompleted,
	})
	if err != nil {
		log.Errorf("list goals error: %s", err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(ListGoalsResponse{
		Goals: found,
		Total: len(found),
	})
	if err != nil {
		log.Errorf("marshal goals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *Handler) HandleSetTarget(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.settarget")
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

	id, ok := goalID(w, r)
	if !ok {
		return
	}

	var req SetTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set goal target, unmarshal json params: %s", err)
		http.Error(w, "set goal target failed", http.StatusBadRequest)
		return
	}

	updated, err := handler.repo.SetTarget(ctx, id, accountID, req.TargetValue)
	if err != nil {
		if fitness.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to set target of goal %d: %s", id, err)
		http.Error(w, "error, failed to set goal target", http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}

	// re-derive progress and completion against the new target
	if err := handler.reconciler.ReconcileAccount(ctx, accountID); err != nil {
		log.Errorf("goal %d target set, reconciliation failed: %s", id, err)
	}

	setTargetRespJson, err := json.Marshal(SetTargetResponse{
		UpdatedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal set target response: %s", err)
		http.Error(w, "failed to marshal set target response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(setTargetRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	id, ok := goalID(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, id, accountID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete goal %d: %s", id, err)
		http.Error(w, "goal not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteGoalResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.reconcile")
	defer span.End()

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	if err := handler.reconciler.ReconcileAccount(ctx, accountID); err != nil {
		// partial progress is kept, the caller still gets the failure
		log.Errorf("reconcile goals for account %d: %s", accountID, err)
		http.Error(w, "goal reconciliation failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "reconciled")
}

func goalID(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
