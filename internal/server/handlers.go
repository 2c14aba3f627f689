package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/boramlab/vlens/internal/model"
	"github.com/boramlab/vlens/internal/service/analysis"
	"github.com/boramlab/vlens/internal/storage"
)

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	store               storage.Store
	svc                 *analysis.Service
	logger              *slog.Logger
	startedAt           time.Time
	version             string
	maxRequestBodyBytes int64
	reportVideoLimit    int
}

// HandlersDeps holds all dependencies for constructing Handlers.
type HandlersDeps struct {
	Store               storage.Store
	Service             *analysis.Service
	Logger              *slog.Logger
	Version             string
	MaxRequestBodyBytes int64
	ReportVideoLimit    int
}

// NewHandlers creates a new Handlers with all dependencies.
func NewHandlers(d HandlersDeps) *Handlers {
	return &Handlers{
		store:               d.Store,
		svc:                 d.Service,
		logger:              d.Logger,
		startedAt:           time.Now(),
		version:             d.Version,
		maxRequestBodyBytes: d.MaxRequestBodyBytes,
		reportVideoLimit:    d.ReportVideoLimit,
	}
}

type upsertVideoRequest struct {
	Video   model.VideoMetadata `json:"video"`
	Channel *model.ChannelStats `json:"channel,omitempty"`
}

// HandleUpsertVideo handles POST /v1/videos. Channel stats are optional;
// when present they are upserted under the video's channel ID.
func (h *Handlers) HandleUpsertVideo(w http.ResponseWriter, r *http.Request) {
	var req upsertVideoRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if req.Video.VideoID == "" {
		writeError(w, r, http.StatusBadRequest, "video_id is required")
		return
	}
	if req.Video.PublishedAt.IsZero() {
		writeError(w, r, http.StatusBadRequest, "published_at is required")
		return
	}

	if err := h.store.UpsertVideo(r.Context(), req.Video); err != nil {
		h.internalError(w, r, "upsert video", err)
		return
	}
	if req.Channel != nil {
		if req.Video.ChannelID == "" {
			writeError(w, r, http.StatusBadRequest, "channel stats require channel_id")
			return
		}
		if err := h.store.UpsertChannelStats(r.Context(), req.Video.ChannelID, *req.Channel); err != nil {
			h.internalError(w, r, "upsert channel stats", err)
			return
		}
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{"video_id": req.Video.VideoID})
}

type ingestSnapshotsRequest struct {
	Snapshots []model.VideoSnapshot `json:"snapshots"`
}

// HandleIngestSnapshots handles POST /v1/videos/{video_id}/snapshots.
// Re-delivered snapshots are deduplicated on (video_id, captured_at).
func (h *Handlers) HandleIngestSnapshots(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("video_id")

	var req ingestSnapshotsRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if len(req.Snapshots) == 0 {
		writeError(w, r, http.StatusBadRequest, "snapshots must not be empty")
		return
	}
	for i := range req.Snapshots {
		if req.Snapshots[i].CapturedAt.IsZero() {
			writeError(w, r, http.StatusBadRequest, "captured_at is required on every snapshot")
			return
		}
		req.Snapshots[i].VideoID = videoID
	}

	if _, err := h.store.GetVideo(r.Context(), videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "video not found")
			return
		}
		h.internalError(w, r, "load video", err)
		return
	}

	inserted, err := h.store.InsertSnapshots(r.Context(), req.Snapshots)
	if err != nil {
		h.internalError(w, r, "insert snapshots", err)
		return
	}

	writeJSON(w, r, http.StatusAccepted, map[string]any{
		"video_id": videoID,
		"accepted": inserted,
	})
}

// HandleVideoAnalysis handles GET /v1/videos/{video_id}/analysis.
func (h *Handlers) HandleVideoAnalysis(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("video_id")

	result, err := h.svc.AnalyzeStored(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "video not found")
			return
		}
		h.internalError(w, r, "analyze video", err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// HandleVideoEntities handles GET /v1/videos/{video_id}/entities.
func (h *Handlers) HandleVideoEntities(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("video_id")

	extraction, err := h.svc.ExtractStoredEntities(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "video not found")
			return
		}
		h.internalError(w, r, "extract entities", err)
		return
	}

	writeJSON(w, r, http.StatusOK, extraction)
}

// HandleTrendReport handles GET /v1/reports/trends.
func (h *Handlers) HandleTrendReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.TrendReport(r.Context(), h.limit(r))
	if err != nil {
		h.internalError(w, r, "build trend report", err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// HandlePredictionReport handles GET /v1/reports/predictions.
func (h *Handlers) HandlePredictionReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.PredictionReport(r.Context(), h.limit(r))
	if err != nil {
		h.internalError(w, r, "build prediction report", err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// HandleNLPReport handles GET /v1/reports/nlp.
func (h *Handlers) HandleNLPReport(w http.ResponseWriter, r *http.Request) {
	report, trends, err := h.svc.NLPReport(r.Context(), h.limit(r))
	if err != nil {
		h.internalError(w, r, "build nlp report", err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"report":         report,
		"keyword_trends": trends,
	})
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Storage       string `json:"storage"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	storageStatus := "connected"
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		storageStatus = "disconnected"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, r, httpStatus, healthResponse{
		Status:        status,
		Version:       h.version,
		Storage:       storageStatus,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	})
}

// limit reads an optional ?limit= query parameter, bounded by the configured
// report cap.
func (h *Handlers) limit(r *http.Request) int {
	limit := h.reportVideoLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < limit {
			limit = n
		}
	}
	return limit
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op+" failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		writeError(w, r, http.StatusBadRequest, "malformed JSON body")
	default:
		writeError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
	}
}
