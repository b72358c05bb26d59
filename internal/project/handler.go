package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"Anchora/internal/auth"
	"Anchora/internal/calc/anchors"
	"Anchora/internal/repo"

	"github.com/gorilla/mux"
)

// Handler serves the signed-in user's saved projects. Every route expects
// auth.RequireUser in front of it.
type Handler struct {
	Store repo.ProjectRepository
	Log   *slog.Logger
	Now   func() time.Time
}

func (h *Handler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Store.ListProjects(r.Context(), userID)
	if err != nil {
		h.logger().Error("list projects", "user_id", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []repo.ProjectRecord{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Save stores the posted project. Dimensions are re-clamped, a missing id is
// assigned and the timestamp is set to the save time.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	f, err := Decode(r.Body, FormatJSON)
	if err != nil {
		http.Error(w, "Invalid project file", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if f.ID == "" {
		if f.ID, err = NewID(); err != nil {
			http.Error(w, "Could not assign project id", http.StatusInternalServerError)
			return
		}
		status = http.StatusCreated
	}
	f.Input = anchors.Normalize(f.Input)
	f.Timestamp = h.now().UTC()

	data, err := Marshal(f)
	if err != nil {
		http.Error(w, "Encode error", http.StatusInternalServerError)
		return
	}
	rec := repo.ProjectRecord{ID: f.ID, UserID: userID, Name: f.Name, Data: data, UpdatedAt: f.Timestamp}
	err = h.Store.SaveProject(r.Context(), rec)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger().Error("save project", "user_id", userID, "id", f.ID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	h.logger().Info("project saved", "user_id", userID, "id", f.ID)
	writeJSON(w, status, f)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (File, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return File{}, false
	}
	id := mux.Vars(r)["id"]
	rec, err := h.Store.GetProject(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return File{}, false
	}
	if err != nil {
		h.logger().Error("get project", "user_id", userID, "id", id, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return File{}, false
	}
	f, err := Unmarshal(rec.Data)
	if err != nil {
		h.logger().Error("stored project unreadable", "id", id, "err", err)
		http.Error(w, "Stored project is corrupt", http.StatusInternalServerError)
		return File{}, false
	}
	return f, true
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if f, ok := h.load(w, r); ok {
		writeJSON(w, http.StatusOK, f)
	}
}

// Export sends the project as a download; ?format=yaml selects YAML.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	f, ok := h.load(w, r)
	if !ok {
		return
	}
	format := FormatJSON
	contentType := "application/json"
	if strings.EqualFold(r.URL.Query().Get("format"), string(FormatYAML)) {
		format = FormatYAML
		contentType = "application/yaml"
	}

	var buf bytes.Buffer
	if err := Encode(&buf, f, format); err != nil {
		http.Error(w, "Encode error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportName(h.now(), format)))
	w.Write(buf.Bytes())
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	err := h.Store.DeleteProject(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger().Error("delete project", "user_id", userID, "id", id, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
