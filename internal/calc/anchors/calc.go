package anchors

import "math"

const (
	criticalEdgeFactor = 1.5  // c_cr = 1.5 * h_ef
	referenceWidth     = 50.0 // mm, width the base capacity is normalised to
	crackedFactor      = 0.7
	shearRatio         = 0.8
)

// EdgeDistancesFor measures from the block centre line to the anchor faces.
func EdgeDistancesFor(concrete ConcreteDimensions, anchor AnchorDimensions) EdgeDistances {
	halfW := concrete.Width / 2
	halfD := concrete.Depth / 2
	return EdgeDistances{
		C1_1: halfW - anchor.Width/2,
		C1_2: halfW + anchor.Width/2,
		C2_1: halfD - anchor.Depth/2,
		C2_2: halfD + anchor.Depth/2,
	}
}

// ComputeCapacity expects a configuration that already passed ValidateFit.
func ComputeCapacity(props ConcreteProperties, concrete ConcreteDimensions, anchor AnchorDimensions) Result {
	strength := ParseStrength(props.Quality)
	edges := EdgeDistancesFor(concrete, anchor)

	minEdge := edges.Min()
	critical := criticalEdgeFactor * anchor.EmbedDepth
	isEdge := minEdge < critical

	// N0 = sqrt(fck) * h_ef^1.5 * (b / 50)
	base := math.Sqrt(float64(strength.CylindricalStrength)) *
		math.Pow(anchor.EmbedDepth, 1.5) *
		(anchor.Width / referenceWidth)

	edgeFactor := 1.0
	if isEdge {
		edgeFactor = math.Min(1.0, minEdge/critical)
	}
	materialFactor := 1.0
	if props.BaseMaterial == Cracked {
		materialFactor = crackedFactor
	}

	tension := int(math.Round(base * edgeFactor * materialFactor))
	// Shear follows the rounded tension figure.
	shear := int(math.Round(shearRatio * float64(tension)))

	return Result{
		TensionCapacity: tension,
		ShearCapacity:   shear,
		IsEdgeAnchor:    isEdge,
		EdgeDistances:   edges,
		StrengthValues:  strength,
	}
}

// Evaluation is the outcome of one pass of the pipeline. Result is nil when
// the configuration does not fit.
type Evaluation struct {
	Validation ValidationResult `json:"validation"`
	Result     *Result          `json:"result,omitempty"`
}

func Evaluate(in Input) Evaluation {
	v := ValidateFit(in.ConcreteDimensions, in.AnchorDimensions)
	if !v.IsValid {
		return Evaluation{Validation: v}
	}
	res := ComputeCapacity(in.ConcreteProperties, in.ConcreteDimensions, in.AnchorDimensions)
	return Evaluation{Validation: v, Result: &res}
}

// Calculate is Evaluate with a *FitError for configurations that do not fit.
func Calculate(in Input) (Result, error) {
	ev := Evaluate(in)
	if err := ev.Validation.Err(); err != nil {
		return Result{}, err
	}
	return *ev.Result, nil
}
