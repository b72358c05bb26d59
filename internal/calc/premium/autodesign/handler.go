package autodesign

import (
	"encoding/json"
	"errors"
	"net/http"

	"Anchora/internal/calc/anchors"
)

type Handler struct{}

func (h *Handler) Embedment(w http.ResponseWriter, r *http.Request) {
	var input EmbedInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Embedment(input)
	var fit *anchors.FitError
	if errors.As(err, &fit) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(fit.Validation)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
