package stats

import (
	"context"

	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/fitness/records"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"
	"github.com/index-create7/self-health-mis/pkg"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

type recordsStore interface {
	List(ctx context.Context, params records.RecordParams) ([]records.Record, error)
}

// CoreMetrics is the wellness summary of an account. Averages cover only
// check-in records that carry both an intensity and a recovery score, the
// check-in rate is relative to all records.
type CoreMetrics struct {
	TotalRecords       int     `json:"totalRecords"`
	CheckinCount       int     `json:"checkinCount"`
	AvgIntensity       float64 `json:"avgIntensity"`
	AvgRecoveryQuality float64 `json:"avgRecoveryQuality"`
	CheckinRatePct     float64 `json:"checkinRatePct"`
}

type Analyzer struct {
	records recordsStore
}

func NewAnalyzer(recordsStore recordsStore) *Analyzer {
	return &Analyzer{
		records: recordsStore,
	}
}

// ComputeCoreMetrics aggregates the wellness metrics of an account over an
// optional date range. No records at all is not an error, everything just
// comes back zero.
func (a *Analyzer) ComputeCoreMetrics(ctx context.Context, params records.RecordParams) (_ *CoreMetrics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.coremetrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account_id", params.AccountID))

	if params.AccountID <= 0 {
		return nil, fitness.NewValidationError("accountId", "must be positive")
	}

	recs, err := a.records.List(ctx, params)
	if err != nil {
		return nil, err
	}

	m := &CoreMetrics{
		TotalRecords: len(recs),
	}
	if len(recs) == 0 {
		return m, nil
	}

	// a check-in counts only when it carries both wellness scores
	var intensitySum, recoverySum float64
	var checkins int
	for _, rec := range recs {
		if !rec.CheckedIn || rec.Intensity == nil || rec.RecoveryQuality == nil {
			continue
		}
		checkins++
		intensitySum += *rec.Intensity
		recoverySum += *rec.RecoveryQuality
	}

	m.CheckinCount = checkins
	if checkins > 0 {
		m.AvgIntensity = pkg.RoundToOneDecimal(intensitySum / float64(checkins))
		m.AvgRecoveryQuality = pkg.RoundToOneDecimal(recoverySum / float64(checkins))
	}
	m.CheckinRatePct = pkg.RoundToOneDecimal(float64(checkins) / float64(len(recs)) * 100)

	return m, nil
}
