package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ScheduleRoutes is the set of handlers the router exposes.
type ScheduleRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetLessons(w http.ResponseWriter, r *http.Request)
	GetLessonFilters(w http.ResponseWriter, r *http.Request)
	GetConflicts(w http.ResponseWriter, r *http.Request)
	GetConflictsChart(w http.ResponseWriter, r *http.Request)
	GetDiagnostics(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	scheduleHandler ScheduleRoutes
	router          *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	scheduleHandler ScheduleRoutes,
	router *mux.Router) *Router {
	return &Router{
		scheduleHandler: scheduleHandler,
		router:          router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.scheduleHandler.Ping).Methods("GET")

	// optional ?day=&class=&teacher=&person=&subject=&room=
	r.router.HandleFunc("/v1/lessons", r.scheduleHandler.GetLessons).Methods("GET")
	r.router.HandleFunc("/v1/lessons/filters", r.scheduleHandler.GetLessonFilters).Methods("GET")

	// optional ?type={person|room}&day=&q=
	r.router.HandleFunc("/v1/conflicts", r.scheduleHandler.GetConflicts).Methods("GET")
	r.router.HandleFunc("/v1/conflicts/chart", r.scheduleHandler.GetConflictsChart).Methods("GET")

	r.router.HandleFunc("/v1/diagnostics", r.scheduleHandler.GetDiagnostics).Methods("GET")
	r.router.HandleFunc("/v1/refresh", r.scheduleHandler.Refresh).Methods("POST")
}
