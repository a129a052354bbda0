package records

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

var ErrRecordNotFound = errors.New("fitness record not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, record Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fitness.NewStorageError("records.add.begin", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("add fitness record, rollback: %s", rollbackErr)
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fitness.NewStorageError("records.add.commit", commitErr)
		}
	}()

	rows, err := tx.Query(
		ctx,
		`INSERT INTO fitness_record
				(account_id, date, exercise_type, duration_minutes, distance_km, calories,
				is_official, is_checkin, intensity, recovery_quality, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id;`,
		record.AccountID, record.Date.Format(fitness.DateLayout), record.ExerciseType,
		record.DurationMinutes, record.DistanceKm, record.Calories,
		record.Official, record.CheckedIn, record.Intensity, record.RecoveryQuality, record.Notes,
	)
	if err != nil {
		return nil, fitness.NewStorageError("records.add", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fitness.NewStorageError("records.add", err)
	}

	if !rows.Next() {
		return nil, fitness.NewStorageError("records.add", errors.New("unexpected error [no rows next]"))
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fitness.NewStorageError("records.add", fmt.Errorf("rows scan: %w", err))
	}

	span.SetAttributes(attribute.Int("record.id", id))

	record.ID = id
	record.Date = fitness.Day(record.Date)
	return &record, nil
}

func (r *Repo) Get(ctx context.Context, id, accountID int) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, account_id, date, exercise_type, duration_minutes, distance_km, calories,
				is_official, is_checkin, intensity, recovery_quality, notes
			FROM fitness_record
			WHERE id = $1 AND account_id = $2;`,
		id, accountID,
	)
	if err != nil {
		return nil, fitness.NewStorageError("records.get", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fitness.NewStorageError("records.get", err)
	}

	recs, err := r.rows2records(rows)
	if err != nil {
		return nil, fitness.NewStorageError("records.get", err)
	}

	if len(recs) != 1 {
		return nil, ErrRecordNotFound
	}

	return &recs[0], nil
}

// List returns the records of an account matching the given filters, newest
// date first. Range bounds are inclusive on both ends.
func (r *Repo) List(ctx context.Context, params RecordParams) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account_id", params.AccountID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.Format(fitness.DateLayout)))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.Format(fitness.DateLayout)))
	}

	from, to := "", ""
	if params.From != nil {
		from = params.From.Format(fitness.DateLayout)
	}
	if params.To != nil {
		to = params.To.Format(fitness.DateLayout)
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, account_id, date, exercise_type, duration_minutes, distance_km, calories,
				is_official, is_checkin, intensity, recovery_quality, notes
			FROM fitness_record
				WHERE account_id = $1
				AND ($2::text = '' OR date >= $2)
				AND ($3::text = '' OR date <= $3)
				AND ($4::boolean IS NULL OR is_official = $4)
			ORDER BY date DESC, id DESC;`,
		params.AccountID, from, to, params.Official,
	)
	if err != nil {
		return nil, fitness.NewStorageError("records.list", fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fitness.NewStorageError("records.list", fmt.Errorf("rows: %w", err))
	}

	recs, err := r.rows2records(rows)
	if err != nil {
		return nil, fitness.NewStorageError("records.list", fmt.Errorf("rows2records: %w", err))
	}
	return recs, nil
}

// UpdateAnnotations applies a partial update of the wellness annotations of a
// record. Fields left nil in the update keep their stored value.
func (r *Repo) UpdateAnnotations(ctx context.Context, id, accountID int, update AnnotationsUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.updateannotations")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE fitness_record SET
				is_checkin = COALESCE($1, is_checkin),
				intensity = COALESCE($2, intensity),
				recovery_quality = COALESCE($3, recovery_quality),
				notes = COALESCE($4, notes)
			WHERE id = $5 AND account_id = $6;`,
		update.CheckedIn, update.Intensity, update.RecoveryQuality, update.Notes,
		id, accountID,
	)
	if err != nil {
		return fitness.NewStorageError("records.updateannotations", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// rows2records scans result rows into records. Rows with a malformed stored
// date are skipped with a warning instead of failing the whole listing.
func (r *Repo) rows2records(rows pgx.Rows) ([]Record, error) {
	var recs []Record
	for rows.Next() {
		var id int
		var accountID int
		var dateRaw string
		var exerciseType string
		var durationMinutes float64
		var distanceKm *float64
		var calories *int
		var official bool
		var checkedIn bool
		var intensity *float64
		var recoveryQuality *float64
		var notes *string
		if err := rows.Scan(
			&id, &accountID, &dateRaw, &exerciseType, &durationMinutes, &distanceKm,
			&calories, &official, &checkedIn, &intensity, &recoveryQuality, &notes,
		); err != nil {
			return nil, err
		}

		date, err := time.Parse(fitness.DateLayout, dateRaw)
		if err != nil {
			log.Warnf("skipping fitness record %d, malformed date [%s]: %s", id, dateRaw, err)
			continue
		}

		recs = append(recs, Record{
			ID:              id,
			AccountID:       accountID,
			Date:            date,
			ExerciseType:    exerciseType,
			DurationMinutes: durationMinutes,
			DistanceKm:      distanceKm,
			Calories:        calories,
			Official:        official,
			CheckedIn:       checkedIn,
			Intensity:       intensity,
			RecoveryQuality: recoveryQuality,
			Notes:           notes,
		})
	}

	if recs == nil {
		recs = make([]Record, 0)
	}

	return recs, nil
}
