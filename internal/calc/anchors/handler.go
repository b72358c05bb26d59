package anchors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	Log *slog.Logger
}

type OptionsResponse struct {
	Constraints   []Constraint   `json:"constraints"`
	SafetyMargin  int            `json:"safetyMargin"`
	Grades        []Grade        `json:"grades"`
	BaseMaterials []BaseMaterial `json:"baseMaterials"`
	Defaults      Input          `json:"defaults"`
}

// FieldValue accepts a form value sent either as a JSON string or a number.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = FieldValue(s)
		return nil
	}
	*v = FieldValue(b)
	return nil
}

type ClampRequest struct {
	Category Category   `json:"category"`
	Field    string     `json:"field"`
	Value    FieldValue `json:"value"`
	Input    Input      `json:"input"`
}

type ClampResponse struct {
	Applied bool    `json:"applied"`
	Input   Input   `json:"input"`
	Update  *Update `json:"update,omitempty"`
}

type StrengthRequest struct {
	Quality Grade `json:"quality"`
}

func (h *Handler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OptionsResponse{
		Constraints:   Constraints(),
		SafetyMargin:  SafetyMargin,
		Grades:        GradeOptions,
		BaseMaterials: BaseMaterialOptions,
		Defaults:      DefaultInput(),
	})
}

func (h *Handler) Clamp(w http.ResponseWriter, r *http.Request) {
	var req ClampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if req.Category == CategoryProperties && (req.Field == FieldQuality || req.Field == FieldBaseMaterial) {
		props, _ := SetProperty(req.Input.ConcreteProperties, req.Field, string(req.Value))
		req.Input.ConcreteProperties = props
		writeJSON(w, http.StatusOK, ClampResponse{Applied: true, Input: req.Input})
		return
	}
	if _, ok := Lookup(req.Category, req.Field); !ok {
		http.Error(w, "Unknown field", http.StatusBadRequest)
		return
	}

	u, ok := Clamp(req.Category, req.Field, string(req.Value), req.Input.ConcreteDimensions, req.Input.AnchorDimensions)
	if !ok {
		writeJSON(w, http.StatusOK, ClampResponse{Applied: false, Input: req.Input})
		return
	}
	writeJSON(w, http.StatusOK, ClampResponse{Applied: true, Input: u.Apply(req.Input), Update: &u})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, ValidateFit(in.ConcreteDimensions, in.AnchorDimensions))
}

func (h *Handler) Strength(w http.ResponseWriter, r *http.Request) {
	var req StrengthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	s, err := ParseGrade(req.Quality)
	if err != nil {
		http.Error(w, "Invalid concrete grade", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	ev := Evaluate(in)
	if ev.Result == nil {
		h.logger().Debug("anchor configuration rejected", "errors", ev.Validation.Errors)
		writeJSON(w, http.StatusUnprocessableEntity, ev.Validation)
		return
	}
	writeJSON(w, http.StatusOK, ev.Result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
