package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"schedule-server/models"
	"schedule-server/models/conflict"
	"schedule-server/models/lesson"
	services "schedule-server/service"
	"schedule-server/util"
)

const (
	TYPE_QUERY_ARG = "type"
)

// Refresher rebuilds the published snapshot on demand.
type Refresher interface {
	RefreshScheduleData(ctx context.Context, force bool) (*models.Snapshot, error)
}

// LessonsResponse is the body of GET /v1/lessons.
type LessonsResponse struct {
	Snapshot models.SnapshotInfo `json:"snapshot"`
	Count    int                 `json:"count"`
	Lessons  []lesson.Entry      `json:"lessons"`
}

// ConflictsResponse is the body of GET /v1/conflicts.
type ConflictsResponse struct {
	Snapshot    models.SnapshotInfo  `json:"snapshot"`
	Count       int                  `json:"count"`
	Conflicts   []conflict.Record    `json:"conflicts"`
	Diagnostics conflict.Diagnostics `json:"diagnostics"`
}

// DiagnosticsResponse is the body of GET /v1/diagnostics.
type DiagnosticsResponse struct {
	Snapshot  models.SnapshotInfo  `json:"snapshot"`
	Lessons   lesson.Diagnostics   `json:"lessons"`
	Conflicts conflict.Diagnostics `json:"conflicts"`
}

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	refresher       Refresher
	days            []string
}

// NewScheduleHandler builds the handler; days orders the chart axis.
func NewScheduleHandler(scheduleService *services.ScheduleService, refresher Refresher, days []string) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		refresher:       refresher,
		days:            days,
	}
}

// Ping handles GET /ping
func (h *ScheduleHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// GetLessons handles GET /v1/lessons
func (h *ScheduleHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	params := models.LessonFilterParamsFromValues(r.URL.Query())
	lessons := h.scheduleService.FilterLessons(snap, params)

	writeJSON(w, http.StatusOK, LessonsResponse{
		Snapshot: snap.Info(),
		Count:    len(lessons),
		Lessons:  lessons,
	})
}

// GetLessonFilters handles GET /v1/lessons/filters
func (h *ScheduleHandler) GetLessonFilters(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.scheduleService.LessonFilterOptions(snap))
}

// GetConflicts handles GET /v1/conflicts
func (h *ScheduleHandler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	params := models.ConflictFilterParamsFromValues(r.URL.Query())
	if params.Type != "" && params.Type != string(conflict.ResourcePerson) && params.Type != string(conflict.ResourceRoom) {
		http.Error(w, "Invalid argument "+TYPE_QUERY_ARG, http.StatusBadRequest)
		return
	}

	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	records := h.scheduleService.FilterConflicts(snap, params)

	writeJSON(w, http.StatusOK, ConflictsResponse{
		Snapshot:    snap.Info(),
		Count:       len(records),
		Conflicts:   records,
		Diagnostics: snap.ConflictDiagnostics,
	})
}

// GetConflictsChart handles GET /v1/conflicts/chart
func (h *ScheduleHandler) GetConflictsChart(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderScheduleCharts(w, snap, h.days); err != nil {
		log.Println("[ScheduleHandler] Error rendering charts:", err)
	}
}

// GetDiagnostics handles GET /v1/diagnostics
func (h *ScheduleHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, DiagnosticsResponse{
		Snapshot:  snap.Info(),
		Lessons:   snap.LessonDiagnostics,
		Conflicts: snap.ConflictDiagnostics,
	})
}

// Refresh handles POST /v1/refresh
func (h *ScheduleHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.refresher.RefreshScheduleData(r.Context(), true)
	if err != nil {
		log.Println("[ScheduleHandler] Refresh failed:", err)
		http.Error(w, "Refresh failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, snap.Info())
}

// snapshot takes the current snapshot once for the request, answering 503 when none exists.
func (h *ScheduleHandler) snapshot(w http.ResponseWriter) (*models.Snapshot, bool) {
	snap, err := h.scheduleService.Snapshot()
	if errors.Is(err, services.ErrNoSnapshot) {
		http.Error(w, "Schedule not loaded yet", http.StatusServiceUnavailable)
		return nil, false
	}
	if err != nil {
		log.Println("[ScheduleHandler] Error loading snapshot:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("[ScheduleHandler] Error encoding response:", err)
	}
}
