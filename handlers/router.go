package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nurhusenm/Devtracker/middleware"
)

// NewRouter wires the wire surface. Auth routes are open; everything under
// /projects and /tasks sits behind the JWT gate.
func NewRouter(auth *AuthHandler, projects *ProjectHandler, tasks *TaskHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLog)

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("DevTracker API is running!"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	guard := func(h http.HandlerFunc) http.Handler {
		return middleware.JWTAuthMiddleware(h)
	}

	r.Handle("/projects", guard(projects.ListProjects)).Methods(http.MethodGet)
	r.Handle("/projects", guard(projects.CreateProject)).Methods(http.MethodPost)
	r.Handle("/projects/{id}", guard(projects.UpdateProject)).Methods(http.MethodPatch)
	r.Handle("/projects/{id}", guard(projects.DeleteProject)).Methods(http.MethodDelete)

	r.Handle("/tasks/project/{projectId}", guard(tasks.GetTasksByProject)).Methods(http.MethodGet)
	r.Handle("/tasks", guard(tasks.CreateTask)).Methods(http.MethodPost)
	r.Handle("/tasks/{taskid}", guard(tasks.UpdateTask)).Methods(http.MethodPatch)
	r.Handle("/tasks/{taskid}", guard(tasks.DeleteTask)).Methods(http.MethodDelete)

	return r
}
