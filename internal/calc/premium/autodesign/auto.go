package autodesign

import (
	"errors"
	"math"

	"Anchora/internal/calc/anchors"
)

var ErrNoDemand = errors.New("required tension or shear must be positive")

type EmbedInput struct {
	anchors.Input
	RequiredTension float64 `json:"requiredTension"` // kN
	RequiredShear   float64 `json:"requiredShear"`   // kN
}

type EmbedResult struct {
	EmbedDepth int            `json:"embedDepth"`
	OK         bool           `json:"ok"`
	Result     anchors.Result `json:"result"`
	Input      anchors.Input  `json:"input"`
	Notes      string         `json:"notes"`
}

// Embedment picks the shallowest whole-millimetre embedment that carries the
// demand. Capacity grows with depth, so the first depth that passes is the
// answer. When even the deepest allowed embedment falls short, that depth is
// returned with OK false.
func Embedment(in EmbedInput) (EmbedResult, error) {
	if in.RequiredTension <= 0 && in.RequiredShear <= 0 {
		return EmbedResult{}, ErrNoDemand
	}
	r := anchors.MustLookup(anchors.CategoryAnchor, anchors.FieldEmbedDepth)
	hi := min(r.Max, int(math.Floor(anchors.MaxEmbedDepth(in.ConcreteDimensions))))
	if hi < r.Min {
		return EmbedResult{}, anchors.ValidateFit(in.ConcreteDimensions, withEmbed(in.Input, r.Min).AnchorDimensions).Err()
	}

	var last anchors.Result
	var lastIn anchors.Input
	for h := r.Min; h <= hi; h++ {
		trial := withEmbed(in.Input, h)
		res, err := anchors.Calculate(trial)
		if err != nil {
			return EmbedResult{}, err
		}
		if float64(res.TensionCapacity) >= in.RequiredTension && float64(res.ShearCapacity) >= in.RequiredShear {
			return EmbedResult{
				EmbedDepth: h,
				OK:         true,
				Result:     res,
				Input:      trial,
				Notes:      "Shallowest embedment meeting the required loads.",
			}, nil
		}
		last, lastIn = res, trial
	}
	return EmbedResult{
		EmbedDepth: hi,
		OK:         false,
		Result:     last,
		Input:      lastIn,
		Notes:      "Required loads exceed capacity at the deepest allowed embedment; enlarge the anchor or use a stronger grade.",
	}, nil
}

func withEmbed(in anchors.Input, h int) anchors.Input {
	in.AnchorDimensions.EmbedDepth = float64(h)
	return in
}
