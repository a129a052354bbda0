package records

import (
	"context"
	"strings"
	"time"

	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=records_test

type recordsRepo interface {
	Add(ctx context.Context, record Record) (*Record, error)
	Get(ctx context.Context, id, accountID int) (*Record, error)
	List(ctx context.Context, params RecordParams) ([]Record, error)
	UpdateAnnotations(ctx context.Context, id, accountID int, update AnnotationsUpdate) error
}

type goalReconciler interface {
	RecordAdded(ctx context.Context, accountID int, exerciseType string, distanceKm *float64) error
}

// Service validates incoming records, persists them and nudges the goal
// reconciler after each successful insert. Reconciliation failures are logged
// and never fail the insert itself.
type Service struct {
	repo       recordsRepo
	reconciler goalReconciler
}

func NewService(repo recordsRepo, reconciler goalReconciler) *Service {
	return &Service{
		repo:       repo,
		reconciler: reconciler,
	}
}

func (s *Service) Add(ctx context.Context, record Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.records.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	record.ExerciseType = strings.ToLower(strings.TrimSpace(record.ExerciseType))
	if err := validateRecord(record); err != nil {
		return nil, err
	}

	added, err := s.repo.Add(ctx, record)
	if err != nil {
		return nil, err
	}

	if err := s.reconciler.RecordAdded(ctx, added.AccountID, added.ExerciseType, added.DistanceKm); err != nil {
		// record is in, a goal progress hiccup must not undo that
		log.Errorf("record %d added, goal reconciliation failed: %s", added.ID, err)
	}

	return added, nil
}

func (s *Service) Get(ctx context.Context, id, accountID int) (*Record, error) {
	if id <= 0 {
		return nil, fitness.NewValidationError("id", "must be positive")
	}
	if accountID <= 0 {
		return nil, fitness.NewValidationError("accountId", "must be positive")
	}
	return s.repo.Get(ctx, id, accountID)
}

// List returns records newest first. An inverted date range is not an error,
// it yields an empty result.
func (s *Service) List(ctx context.Context, params RecordParams) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.records.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.AccountID <= 0 {
		return nil, fitness.NewValidationError("accountId", "must be positive")
	}

	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		log.Warnf(
			"list records for account %d: end date %s before start date %s, returning empty result",
			params.AccountID, params.To.Format(fitness.DateLayout), params.From.Format(fitness.DateLayout),
		)
		return []Record{}, nil
	}

	return s.repo.List(ctx, params)
}

func (s *Service) UpdateAnnotations(ctx context.Context, id, accountID int, update AnnotationsUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.records.updateannotations")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if id <= 0 {
		return fitness.NewValidationError("id", "must be positive")
	}
	if accountID <= 0 {
		return fitness.NewValidationError("accountId", "must be positive")
	}
	if update.Empty() {
		return fitness.NewValidationError("annotations", "no fields to update")
	}
	if update.Intensity != nil && (*update.Intensity < 0 || *update.Intensity > 10) {
		return fitness.NewValidationError("intensity", "must be between 0 and 10")
	}
	if update.RecoveryQuality != nil && (*update.RecoveryQuality < 0 || *update.RecoveryQuality > 10) {
		return fitness.NewValidationError("recoveryQuality", "must be between 0 and 10")
	}

	return s.repo.UpdateAnnotations(ctx, id, accountID, update)
}

func validateRecord(record Record) error {
	if record.AccountID <= 0 {
		return fitness.NewValidationError("accountId", "must be positive")
	}
	if record.ExerciseType == "" {
		return fitness.NewValidationError("exerciseType", "must not be empty")
	}
	if record.DurationMinutes <= 0 {
		return fitness.NewValidationError("durationMinutes", "must be positive")
	}
	if record.Date.IsZero() {
		return fitness.NewValidationError("date", "must be set")
	}
	if fitness.Day(record.Date).After(fitness.Day(time.Now())) {
		return fitness.NewValidationError("date", "must not be in the future")
	}
	if record.DistanceKm != nil && *record.DistanceKm < 0 {
		return fitness.NewValidationError("distanceKm", "must not be negative")
	}
	if record.Calories != nil && *record.Calories < 0 {
		return fitness.NewValidationError("calories", "must not be negative")
	}
	if record.Intensity != nil && (*record.Intensity < 0 || *record.Intensity > 10) {
		return fitness.NewValidationError("intensity", "must be between 0 and 10")
	}
	if record.RecoveryQuality != nil && (*record.RecoveryQuality < 0 || *record.RecoveryQuality > 10) {
		return fitness.NewValidationError("recoveryQuality", "must be between 0 and 10")
	}
	return nil
}
