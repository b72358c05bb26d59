package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type Handler struct {
	Log *slog.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, req, time.Now()); err != nil {
		if h.Log != nil {
			h.Log.Error("render report", "project", req.Project, "err", err)
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"anchor-report.pdf\"")
	w.Write(buf.Bytes())
}
