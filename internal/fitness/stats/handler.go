package stats

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/index-create7/self-health-mis/internal/auth"
	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/fitness/records"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"
	"github.com/index-create7/self-health-mis/pkg"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) HandleCoreMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.coremetrics")
	defer span.End()

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	params := records.RecordParams{AccountID: accountID}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(fitness.DateLayout, fromStr)
		if err != nil {
			http.Error(w, "failed to parse from param", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(fitness.DateLayout, toStr)
		if err != nil {
			http.Error(w, "failed to parse to param", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	coreMetrics, err := handler.analyzer.ComputeCoreMetrics(ctx, params)
	if err != nil {
		log.Errorf("failed to compute core metrics for account %d: %s", accountID, err)
		http.Error(w, "failed to compute core metrics", http.StatusInternalServerError)
		return
	}

	coreMetricsJson, err := json.Marshal(coreMetrics)
	if err != nil {
		log.Errorf("failed to marshal core metrics: %s", err)
		http.Error(w, "failed to marshal core metrics", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, coreMetricsJson, http.StatusOK)
}
