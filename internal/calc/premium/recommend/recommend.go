package recommend

import (
	"errors"

	"Anchora/internal/calc/anchors"
)

var ErrNoDemand = errors.New("required tension or shear must be positive")

type GradeInput struct {
	anchors.Input
	RequiredTension float64 `json:"requiredTension"` // kN
	RequiredShear   float64 `json:"requiredShear"`   // kN
}

type GradeResult struct {
	Quality anchors.Grade  `json:"quality"`
	OK      bool           `json:"ok"`
	Result  anchors.Result `json:"result"`
	Notes   string         `json:"notes"`
}

// Grade walks the offered grades from weakest to strongest and returns the
// first that carries the demand with the rest of the configuration fixed.
func Grade(in GradeInput) (GradeResult, error) {
	if in.RequiredTension <= 0 && in.RequiredShear <= 0 {
		return GradeResult{}, ErrNoDemand
	}

	var out GradeResult
	for _, g := range anchors.GradeOptions {
		trial := in.Input
		trial.ConcreteProperties.Quality = g
		res, err := anchors.Calculate(trial)
		if err != nil {
			return GradeResult{}, err
		}
		out = GradeResult{Quality: g, Result: res}
		if float64(res.TensionCapacity) >= in.RequiredTension && float64(res.ShearCapacity) >= in.RequiredShear {
			out.OK = true
			out.Notes = "Lowest concrete grade meeting the required loads."
			return out, nil
		}
	}
	out.Notes = "No offered grade carries the required loads; increase the embedment or anchor size."
	return out, nil
}
