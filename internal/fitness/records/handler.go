package records

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
	"github.com/index-create7/self-health-mis/internal/telemetry/metrics"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"
	"github.com/index-create7/self-health-mis/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=records_test

type recordsService interface {
	Add(ctx context.Context, record Record) (*Record, error)
	Get(ctx context.Context, id, accountID int) (*Record, error)
	List(ctx context.Context, params RecordParams) ([]Record, error)
	UpdateAnnotations(ctx context.Context, id, accountID int, update AnnotationsUpdate) error
}

type ListResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

type UpdateAnnotationsResponse struct {
	UpdatedID int `json:"updatedId"`
}

type Handler struct {
	service recordsService
	metrics *metrics.Manager
}

func NewHandler(service recordsService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.add")
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

	var record Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Tracef("new fitness record, unmarshal json params: %s", err)
		http.Error(w, "add fitness record failed", http.StatusBadRequest)
		return
	}

	record.AccountID = accountID
	if record.Date.IsZero() {
		record.Date = time.Now()
	}

	addedRecord, err := handler.service.Add(ctx, record)
	if err != nil {
		if fitness.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add fitness record [%s] for account %d: %s", record.ExerciseType, accountID, err)
		http.Error(w, "error, failed to add fitness record", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterFitnessRecords.Inc()

	addedRecordJson, err := json.Marshal(addedRecord)
	if err != nil {
		log.Errorf("failed to marshal added fitness record: %s", err)
		http.Error(w, "error, failed to add fitness record", http.StatusInternalServerError)
		return
	}

	log.Debugf("new fitness record added: %s", addedRecordJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedRecordJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.get")
	defer span.End()

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	record, err := handler.service.Get(ctx, id, accountID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, "fitness record not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get fitness record %d: %s", id, err)
		http.Error(w, "failed to get fitness record", http.StatusInternalServerError)
		return
	}

	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("failed to marshal fitness record: %s", err)
		http.Error(w, "failed to marshal fitness record", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.list")
	defer span.End()

	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	params := RecordParams{AccountID: accountID}

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
	if officialStr := r.URL.Query().Get("official"); officialStr != "" {
		official, err := strconv.ParseBool(officialStr)
		if err != nil {
			http.Error(w, "failed to parse official param", http.StatusBadRequest)
			return
		}
		params.Official = &official
	}

	recs, err := handler.service.List(ctx, params)
	if err != nil {
		if fitness.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("list fitness records error: %s", err)
		http.Error(w, "failed to get fitness records", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Records: recs,
		Total:   len(recs),
	})
	if err != nil {
		log.Errorf("marshal fitness records error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdateAnnotations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.annotations")
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

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var update AnnotationsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Tracef("update annotations, unmarshal json params: %s", err)
		http.Error(w, "update annotations failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.UpdateAnnotations(ctx, id, accountID, update); err != nil {
		switch {
		case fitness.IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrRecordNotFound):
			http.Error(w, "fitness record not found", http.StatusNotFound)
		default:
			log.Errorf("failed to update annotations of record %d: %s", id, err)
			http.Error(w, "error, failed to update annotations", http.StatusInternalServerError)
		}
		return
	}

	updateRespJson, err := json.Marshal(UpdateAnnotationsResponse{
		UpdatedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal update annotations response: %s", err)
		http.Error(w, "failed to marshal update annotations response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}
