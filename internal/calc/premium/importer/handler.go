package importer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"Anchora/internal/calc/anchors"
	"Anchora/internal/calc/premium/batch"
)

const maxUpload = 10 << 20

type Handler struct {
	Log *slog.Logger
}

type ImportedRow struct {
	Line int `json:"line"`
	anchors.Evaluation
}

type ImportResult struct {
	Count   int           `json:"count"`
	Results []ImportedRow `json:"results"`
	Errors  []RowError    `json:"errors"`
}

func (h *Handler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

// Import evaluates every row of an uploaded workbook (form field "file").
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, rowErrs, err := ParseWorkbook(file)
	if err != nil {
		h.logger().Debug("workbook rejected", "err", err)
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}

	out := ImportResult{Results: make([]ImportedRow, 0, len(rows)), Errors: rowErrs}
	if out.Errors == nil {
		out.Errors = []RowError{}
	}
	for _, row := range rows {
		out.Results = append(out.Results, ImportedRow{Line: row.Line, Evaluation: anchors.Evaluate(row.Input)})
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Export evaluates a JSON batch and returns the inputs and results as XLSX.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}

	rows := make([]Row, len(input.Items))
	evals := make([]anchors.Evaluation, len(res.Results))
	for i, item := range input.Items {
		rows[i] = Row{Line: i + 2, Input: item.Input}
		evals[i] = res.Results[i].Evaluation
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, rows, evals); err != nil {
		h.logger().Error("write workbook", "err", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"anchor-results.xlsx\"")
	w.Write(buf.Bytes())
}
