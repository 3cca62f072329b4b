package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexanderramin/todod/internal/domain"
	"github.com/alexanderramin/todod/internal/service"
)

// maxBodyBytes caps request bodies for create and update.
const maxBodyBytes = 1 << 20

// Pinger reports storage reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the /tasks/ API on top of a TodoService.
type Handler struct {
	todos     service.TodoService
	health    Pinger
	validator *inputValidator
	logger    *slog.Logger
	mux       *http.ServeMux
	handler   http.Handler
}

// NewHandler wires routes. health may be nil, in which case /healthz always
// reports ok.
func NewHandler(todos service.TodoService, health Pinger, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	validator, err := newInputValidator()
	if err != nil {
		return nil, err
	}
	h := &Handler{
		todos:     todos,
		health:    health,
		validator: validator,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	h.routes()
	h.handler = chain(h.mux, withRequestID, withAccessLog(logger), withRecovery(logger))
	return h, nil
}

func (h *Handler) routes() {
	h.mux.HandleFunc("POST /tasks/{$}", h.createTask)
	h.mux.HandleFunc("GET /tasks/{$}", h.listTasks)
	h.mux.HandleFunc("GET /tasks/{task_id}", h.getTask)
	h.mux.HandleFunc("PUT /tasks/{task_id}", h.updateTask)
	h.mux.HandleFunc("DELETE /tasks/{task_id}", h.deleteTask)
	h.mux.HandleFunc("GET /healthz", h.healthz)
}

// ServeHTTP applies middleware around the route table.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInput(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	todo, err := h.todos.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	todo, err := h.todos.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := h.readInput(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	todo, err := h.todos.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.todos.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: MsgTaskDeleted})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			loggerFrom(r.Context(), h.logger).WarnContext(r.Context(), "health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readInput reads and validates the request body before any storage access.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (domain.TodoInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.TodoInput{}, fmt.Errorf("reading request body: %w", err)
	}
	return h.validator.decode(body)
}

// taskID parses the {task_id} path segment.
func taskID(r *http.Request) (int64, error) {
	raw := r.PathValue("task_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newValidationError(
			[]string{"path", "task_id"},
			"Input should be a valid integer, unable to parse string as an integer",
			"int_parsing",
		)
	}
	return id, nil
}
