package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrGoalNotFound = errors.New("fitness goal not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO fitness_goal
				(account_id, goal_type, target_value, current_value, start_date, end_date, is_completed)
				VALUES ($1, $2, $3, 0, $4, $5, FALSE)
			RETURNING id;`,
		goal.AccountID, string(goal.Type), goal.TargetValue,
		goal.StartDate.Format(fitness.DateLayout), goal.EndDate.Format(fitness.DateLayout),
	)
	if err != nil {
		return nil, fitness.NewStorageError("goals.add", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fitness.NewStorageError("goals.add", err)
	}

	if !rows.Next() {
		return nil, fitness.NewStorageError("goals.add", errors.New("unexpected error [no rows next]"))
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fitness.NewStorageError("goals.add", fmt.Errorf("rows scan: %w", err))
	}

	span.SetAttributes(attribute.Int("goal.id", id))

	goal.ID = id
	goal.CurrentValue = 0
	goal.Completed = false
	goal.StartDate = fitness.Day(goal.StartDate)
	goal.EndDate = fitness.Day(goal.EndDate)
	return &goal, nil
}

func (r *Repo) Get(ctx context.Context, id, accountID int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, account_id, goal_type, target_value, current_value, start_date, end_date, is_completed
			FROM fitness_goal
			WHERE id = $1 AND account_id = $2;`,
		id, accountID,
	)
	if err != nil {
		return nil, fitness.NewStorageError("goals.get", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fitness.NewStorageError("goals.get", err)
	}

	found, err := r.rows2goals(rows)
	if err != nil {
		return nil, fitness.NewStorageError("goals.get", err)
	}

	if len(found) != 1 {
		return nil, ErrGoalNotFound
	}

	return &found[0], nil
}

// List returns the goals of an account ordered by end date, soonest deadline
// first. Completed goals are skipped unless asked for.
func (r *Repo) List(ctx context.Context, params GoalParams) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account_id", params.AccountID))
	span.SetAttributes(attribute.Bool("include_completed", params.IncludeCompleted))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, account_id, goal_type, target_value, current_value, start_date, end_date, is_completed
			FROM fitness_goal
				WHERE account_id = $1
				AND ($2::boolean IS TRUE OR is_completed = FALSE)
			ORDER BY end_date ASC, id ASC;`,
		params.AccountID, params.IncludeCompleted,
	)
	if err != nil {
		return nil, fitness.NewStorageError("goals.list", fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fitness.NewStorageError("goals.list", fmt.Errorf("rows: %w", err))
	}

	found, err := r.rows2goals(rows)
	if err != nil {
		return nil, fitness.NewStorageError("goals.list", fmt.Errorf("rows2goals: %w", err))
	}
	return found, nil
}

// ListIncomplete returns the open goals of an account.
func (r *Repo) ListIncomplete(ctx context.Context, accountID int) ([]Goal, error) {
	return r.List(ctx, GoalParams{AccountID: accountID})
}

// SetProgress stores a new progress value for a goal. The value is clamped to
// [0, target] and completion is derived from the clamped value. The read and
// the write happen in one transaction with the row locked in between.
// A missing or foreign goal is not an error, it reports updated=false.
func (r *Repo) SetProgress(ctx context.Context, goalID, accountID int, value float64) (updated, completedNow bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.setprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))
	span.SetAttributes(attribute.Float64("value", value))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, false, fitness.NewStorageError("goals.setprogress.begin", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("set goal progress, rollback: %s", rollbackErr)
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fitness.NewStorageError("goals.setprogress.commit", commitErr)
			updated, completedNow = false, false
		}
	}()

	var targetValue float64
	var wasCompleted bool
	err = tx.QueryRow(
		ctx,
		`SELECT target_value, is_completed FROM fitness_goal
			WHERE id = $1 AND account_id = $2
			FOR UPDATE;`,
		goalID, accountID,
	).Scan(&targetValue, &wasCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return false, false, nil
	}
	if err != nil {
		return false, false, fitness.NewStorageError("goals.setprogress.read", err)
	}

	clamped := value
	if clamped < 0 {
		clamped = 0
	}
	if clamped > targetValue {
		clamped = targetValue
	}
	completed := clamped >= targetValue

	tag, err := tx.Exec(
		ctx,
		`UPDATE fitness_goal SET current_value = $1, is_completed = $2 WHERE id = $3 AND account_id = $4;`,
		clamped, completed, goalID, accountID,
	)
	if err != nil {
		return false, false, fitness.NewStorageError("goals.setprogress.write", err)
	}

	return tag.RowsAffected() > 0, completed && !wasCompleted, nil
}

// SetTarget replaces the target value of a goal and resets its completion
// flag, so the next reconciliation re-derives it against the new target.
func (r *Repo) SetTarget(ctx context.Context, goalID, accountID int, target float64) (updated bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.settarget")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	if target <= 0 {
		return false, fitness.NewValidationError("target", "must be positive")
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE fitness_goal SET target_value = $1, is_completed = FALSE WHERE id = $2 AND account_id = $3;`,
		target, goalID, accountID,
	)
	if err != nil {
		return false, fitness.NewStorageError("goals.settarget", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repo) Delete(ctx context.Context, goalID, accountID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM fitness_goal WHERE id = $1 AND account_id = $2;`,
		goalID, accountID,
	)
	if err != nil {
		return fitness.NewStorageError("goals.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) rows2goals(rows pgx.Rows) ([]Goal, error) {
	var found []Goal
	for rows.Next() {
		var g Goal
		var goalType string
		var startRaw, endRaw string
		if err := rows.Scan(
			&g.ID, &g.AccountID, &goalType, &g.TargetValue, &g.CurrentValue,
			&startRaw, &endRaw, &g.Completed,
		); err != nil {
			return nil, err
		}

		gt, err := ParseGoalType(goalType)
		if err != nil {
			log.Warnf("skipping fitness goal %d: %s", g.ID, err)
			continue
		}
		g.Type = gt

		if g.StartDate, err = parseGoalDate(g.ID, "start", startRaw); err != nil {
			continue
		}
		if g.EndDate, err = parseGoalDate(g.ID, "end", endRaw); err != nil {
			continue
		}

		found = append(found, g)
	}

	if found == nil {
		found = make([]Goal, 0)
	}

	return found, nil
}

func parseGoalDate(goalID int, which, raw string) (time.Time, error) {
	date, err := time.Parse(fitness.DateLayout, raw)
	if err != nil {
		log.Warnf("skipping fitness goal %d, malformed %s date [%s]: %s", goalID, which, raw, err)
		return time.Time{}, err
	}
	return date, nil
}

func validateGoal(goal Goal) error {
	if goal.AccountID <= 0 {
		return fitness.NewValidationError("accountId", "must be positive")
	}
	if !goal.Type.Valid() {
		return fitness.NewValidationError("type", fmt.Sprintf("unknown goal type %q", goal.Type))
	}
	if goal.TargetValue <= 0 {
		return fitness.NewValidationError("targetValue", "must be positive")
	}
	if goal.StartDate.IsZero() || goal.EndDate.IsZero() {
		return fitness.NewValidationError("dates", "start and end date must be set")
	}
	if !fitness.Day(goal.EndDate).After(fitness.Day(goal.StartDate)) {
		return fitness.NewValidationError("endDate", "must be after start date")
	}
	return nil
}
