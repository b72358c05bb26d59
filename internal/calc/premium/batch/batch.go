package batch

import (
	"errors"

	"Anchora/internal/calc/anchors"
)

var ErrNoItems = errors.New("no items")

type Item struct {
	Label string `json:"label,omitempty"`
	anchors.Input
}

type Input struct {
	Items []Item `json:"items"`
}

type ItemResult struct {
	Label string `json:"label,omitempty"`
	anchors.Evaluation
}

type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

type Result struct {
	Summary Summary      `json:"summary"`
	Results []ItemResult `json:"results"`
}

// Calculate evaluates every item in order. A configuration that does not fit
// is reported in its slot and does not stop the batch.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	out := Result{Results: make([]ItemResult, 0, len(in.Items))}
	for _, item := range in.Items {
		ev := anchors.Evaluate(item.Input)
		if ev.Result != nil {
			out.Summary.Valid++
		} else {
			out.Summary.Invalid++
		}
		out.Results = append(out.Results, ItemResult{Label: item.Label, Evaluation: ev})
	}
	out.Summary.Total = len(in.Items)
	return out, nil
}
