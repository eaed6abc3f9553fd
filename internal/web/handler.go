// Package web maps the application services onto a small JSON API.
// Every response is the discriminated envelope the UI consumes:
// {"success":true,...} or {"success":false,"error":"..."}.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/todoapp/internal/service"
	"github.com/nhle/todoapp/internal/validate"
	"github.com/nhle/todoapp/internal/view"
)

// SessionCookie is the name of the HttpOnly cookie carrying the opaque
// session token.
const SessionCookie = "todoapp_session"

// Handler wires the services to HTTP routes.
type Handler struct {
	creds   *service.Credentials
	todos   *service.Todos
	profile *service.Profile
	tracker *view.Tracker
	log     *log.Logger
}

// New returns a Handler over the given services.
func New(creds *service.Credentials, todos *service.Todos, profile *service.Profile, tracker *view.Tracker, logger *log.Logger) *Handler {
	return &Handler{creds: creds, todos: todos, profile: profile, tracker: tracker, log: logger}
}

// Routes returns the ServeMux for the JSON API.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/signup", h.handleSignup)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/logout", h.handleLogout)

	mux.HandleFunc("GET /api/todos", h.handleListTodos)
	mux.HandleFunc("POST /api/todos", h.handleCreateTodo)
	mux.HandleFunc("PUT /api/todos", h.handleUpdateTodo)
	mux.HandleFunc("DELETE /api/todos", h.handleDeleteTodo)
	mux.HandleFunc("POST /api/todos/toggle", h.handleToggleTodo)

	mux.HandleFunc("PUT /api/profile", h.handleUpdateProfile)
	mux.HandleFunc("PUT /api/profile/password", h.handleChangePassword)

	mux.HandleFunc("GET /api/revision", h.handleRevision)

	return mux
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in validate.SignupInput
	if !h.decode(w, r, &in) {
		return
	}

	_, token, err := h.creds.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": "/todos"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in validate.LoginInput
	if !h.decode(w, r, &in) {
		return
	}

	token, err := h.creds.Authenticate(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": "/todos"})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.creds.Logout(r.Context(), h.sessionToken(r)); err != nil {
		h.log.Error("destroying session at logout", "error", err)
	}

	h.clearSessionCookie(w)
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": "/login"})
}

func (h *Handler) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.List(r.Context(), h.sessionToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "todos": todos})
}

// createTodoRequest is the wire form of a new todo; the due date
// arrives as a plain calendar date.
type createTodoRequest struct {
	Title    string  `json:"title"`
	Memo     *string `json:"memo"`
	Priority string  `json:"priority"`
	DueDate  string  `json:"due_date"`
}

// updateTodoRequest is the wire form of a full todo replacement.
type updateTodoRequest struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Memo        *string `json:"memo"`
	IsCompleted bool    `json:"is_completed"`
	Priority    string  `json:"priority"`
	DueDate     string  `json:"due_date"`
}

func (h *Handler) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if !h.decode(w, r, &req) {
		return
	}

	due, ok := h.parseDueDate(w, req.DueDate)
	if !ok {
		return
	}

	todo, err := h.todos.Create(r.Context(), h.sessionToken(r), validate.CreateTodoInput{
		Title:    req.Title,
		Memo:     req.Memo,
		Priority: req.Priority,
		DueDate:  due,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "todo": todo})
}

func (h *Handler) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req updateTodoRequest
	if !h.decode(w, r, &req) {
		return
	}

	due, ok := h.parseDueDate(w, req.DueDate)
	if !ok {
		return
	}

	todo, err := h.todos.Update(r.Context(), h.sessionToken(r), validate.UpdateTodoInput{
		ID:          req.ID,
		Title:       req.Title,
		Memo:        req.Memo,
		IsCompleted: req.IsCompleted,
		Priority:    req.Priority,
		DueDate:     due,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "todo": todo})
}

func (h *Handler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := h.todos.Delete(r.Context(), h.sessionToken(r), r.URL.Query().Get("id")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := h.todos.ToggleComplete(r.Context(), h.sessionToken(r), r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "todo": todo})
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in validate.ProfileInput
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.profile.UpdateProfile(r.Context(), h.sessionToken(r), in); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var in validate.ChangePasswordInput
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.profile.ChangePassword(r.Context(), h.sessionToken(r), in); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleRevision reports the invalidation revision for a path so
// clients can poll for stale views.
func (h *Handler) handleRevision(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"path":     path,
		"revision": h.tracker.Revision(path),
	})
}

func (h *Handler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// parseDueDate converts an optional YYYY-MM-DD string to a time. An
// unparsable date fails the request before the service is called.
func (h *Handler) parseDueDate(w http.ResponseWriter, s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "error": "enter a valid due date",
		})
		return nil, false
	}
	return &t, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "error": "invalid request body",
		})
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encoding response", "error", err)
	}
}

// writeError translates a service error into the failure envelope.
// Expected outcomes map to their status by kind; anything else is a
// logged internal error with no detail leaked to the caller.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if serr, ok := service.AsError(err); ok {
		h.writeJSON(w, statusFor(serr.Kind), map[string]any{
			"success": false, "error": serr.Message,
		})
		return
	}

	h.log.Error("unexpected service failure", "error", err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false, "error": "internal server error",
	})
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
