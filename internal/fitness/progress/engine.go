package progress

import (
	"context"

	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/fitness/goals"
	"github.com/index-create7/self-health-mis/internal/fitness/records"
	"github.com/index-create7/self-health-mis/internal/telemetry/metrics"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=engine_mocks_test.go -package=progress_test

type goalsStore interface {
	ListIncomplete(ctx context.Context, accountID int) ([]goals.Goal, error)
	SetProgress(ctx context.Context, goalID, accountID int, value float64) (updated, completedNow bool, err error)
}

type recordsStore interface {
	List(ctx context.Context, params records.RecordParams) ([]records.Record, error)
}

// Engine derives goal progress from the records actually stored. Both the
// per-record trigger and the full rescan funnel through the same aggregation,
// so running either path any number of times converges on the same values.
type Engine struct {
	goals   goalsStore
	records recordsStore
	metrics *metrics.Manager
}

func NewEngine(goalsStore goalsStore, recordsStore recordsStore, metrics *metrics.Manager) *Engine {
	return &Engine{
		goals:   goalsStore,
		records: recordsStore,
		metrics: metrics,
	}
}

// RecordAdded refreshes the open goals a newly stored record can affect.
// Failures are isolated per goal, the combined error reports all of them.
func (e *Engine) RecordAdded(ctx context.Context, accountID int, exerciseType string, distanceKm *float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.recordadded")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account_id", accountID))
	span.SetAttributes(attribute.String("exercise_type", exerciseType))

	e.metrics.CounterReconcileRuns.Inc()

	openGoals, err := e.goals.ListIncomplete(ctx, accountID)
	if err != nil {
		return err
	}

	var affected []goals.Goal
	for _, g := range openGoals {
		if g.Type.AffectedBy(exerciseType, distanceKm) {
			affected = append(affected, g)
		}
	}
	span.SetAttributes(attribute.Int("goals.affected", len(affected)))

	return e.reconcileGoals(ctx, affected)
}

// ReconcileAccount rescans the records of an account and refreshes every open
// goal. Safe to run at any time and idempotent.
func (e *Engine) ReconcileAccount(ctx context.Context, accountID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.reconcileaccount")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account_id", accountID))

	if accountID <= 0 {
		return fitness.NewValidationError("accountId", "must be positive")
	}

	e.metrics.CounterReconcileRuns.Inc()

	openGoals, err := e.goals.ListIncomplete(ctx, accountID)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("goals.open", len(openGoals)))

	return e.reconcileGoals(ctx, openGoals)
}

func (e *Engine) reconcileGoals(ctx context.Context, toReconcile []goals.Goal) error {
	var combined error
	for _, g := range toReconcile {
		if err := e.reconcileGoal(ctx, g); err != nil {
			e.metrics.CounterReconcileGoalErrors.Inc()
			log.Errorf("reconcile goal %d [%s] for account %d: %s", g.ID, g.Type, g.AccountID, err)
			combined = multierr.Append(combined, &fitness.ReconciliationError{GoalID: g.ID, Err: err})
		}
	}
	return combined
}

func (e *Engine) reconcileGoal(ctx context.Context, g goals.Goal) error {
	recs, err := e.records.List(ctx, records.RecordParams{
		AccountID: g.AccountID,
		From:      &g.StartDate,
		To:        &g.EndDate,
	})
	if err != nil {
		return err
	}

	value := Aggregate(g.Type, recs)

	updated, completedNow, err := e.goals.SetProgress(ctx, g.ID, g.AccountID, value)
	if err != nil {
		return err
	}
	if !updated {
		// goal got deleted while we were aggregating
		log.Debugf("goal %d vanished during reconciliation", g.ID)
		return nil
	}
	if completedNow {
		e.metrics.CounterGoalsCompleted.Inc()
		log.Infof("goal %d [%s] for account %d completed", g.ID, g.Type, g.AccountID)
	}
	return nil
}

// Aggregate computes the progress value of a goal type over the records in
// its window. This is the single source of truth for goal progress.
func Aggregate(goalType goals.GoalType, recs []records.Record) float64 {
	var value float64
	for _, rec := range recs {
		switch goalType {
		case goals.GoalWeeklyRunCount:
			if rec.ExerciseType == fitness.ExerciseRun {
				value++
			}
		case goals.GoalWeeklyTotalDuration:
			value += rec.DurationMinutes
		case goals.GoalMonthlyRunDistance:
			if rec.ExerciseType == fitness.ExerciseRun && rec.DistanceKm != nil {
				value += *rec.DistanceKm
			}
		case goals.GoalStrengthSessionCount:
			if fitness.IsStrengthExercise(rec.ExerciseType) {
				value++
			}
		}
	}
	return value
}
