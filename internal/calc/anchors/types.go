package anchors

// All lengths are millimetres, strengths MPa and capacities kN.

type BaseMaterial string

const (
	Cracked    BaseMaterial = "Cracked"
	NonCracked BaseMaterial = "Non-cracked"
)

// Grade is a concrete strength class such as "C30/37".
type Grade string

type ConcreteDimensions struct {
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	Depth     float64 `json:"depth" yaml:"depth"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
}

type ConcreteProperties struct {
	Quality      Grade        `json:"quality" yaml:"quality"`
	Covering     float64      `json:"covering" yaml:"covering"`
	BaseMaterial BaseMaterial `json:"baseMaterial" yaml:"baseMaterial"`
}

type AnchorDimensions struct {
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	Depth      float64 `json:"depth" yaml:"depth"`
	EmbedDepth float64 `json:"embedDepth" yaml:"embedDepth"`
}

// Input is the configuration record the engine is evaluated against.
// Callers may decode it from a larger document; unknown keys are ignored.
type Input struct {
	ConcreteDimensions ConcreteDimensions `json:"concreteDimensions" yaml:"concreteDimensions"`
	ConcreteProperties ConcreteProperties `json:"concreteProperties" yaml:"concreteProperties"`
	AnchorDimensions   AnchorDimensions   `json:"anchorDimensions" yaml:"anchorDimensions"`
}

type EdgeDistances struct {
	C1_1 float64 `json:"c1_1"`
	C1_2 float64 `json:"c1_2"`
	C2_1 float64 `json:"c2_1"`
	C2_2 float64 `json:"c2_2"`
}

// Min returns the smallest of the four distances.
func (e EdgeDistances) Min() float64 {
	return min(e.C1_1, e.C1_2, e.C2_1, e.C2_2)
}

type StrengthValues struct {
	CylindricalStrength int     `json:"cylindricalStrength"`
	CubicStrength       int     `json:"cubicStrength"`
	TensileStrength     float64 `json:"tensileStrength"`
}

type Result struct {
	TensionCapacity int            `json:"tensionCapacity"`
	ShearCapacity   int            `json:"shearCapacity"`
	IsEdgeAnchor    bool           `json:"isEdgeAnchor"`
	EdgeDistances   EdgeDistances  `json:"edgeDistances"`
	StrengthValues  StrengthValues `json:"strengthValues"`
}

// Disclaimer accompanies every rendered result.
const Disclaimer = "These calculations are simplified estimates. Actual structural engineering " +
	"calculations should be performed by qualified professionals using appropriate standards and codes."

// GradeOptions lists the strength classes offered to users.
var GradeOptions = []Grade{"C20/25", "C25/30", "C30/37", "C35/45", "C40/50", "C45/55", "C50/60"}

var BaseMaterialOptions = []BaseMaterial{Cracked, NonCracked}

// DefaultInput is the configuration a new project starts from.
func DefaultInput() Input {
	return Input{
		ConcreteDimensions: ConcreteDimensions{
			Width:     float64(MustLookup(CategoryConcrete, FieldWidth).Default),
			Height:    float64(MustLookup(CategoryConcrete, FieldHeight).Default),
			Depth:     float64(MustLookup(CategoryConcrete, FieldDepth).Default),
			Thickness: float64(MustLookup(CategoryConcrete, FieldThickness).Default),
		},
		ConcreteProperties: ConcreteProperties{
			Quality:      GradeOptions[0],
			Covering:     float64(MustLookup(CategoryProperties, FieldCovering).Default),
			BaseMaterial: Cracked,
		},
		AnchorDimensions: AnchorDimensions{
			Width:      float64(MustLookup(CategoryAnchor, FieldWidth).Default),
			Height:     float64(MustLookup(CategoryAnchor, FieldHeight).Default),
			Depth:      float64(MustLookup(CategoryAnchor, FieldDepth).Default),
			EmbedDepth: float64(MustLookup(CategoryAnchor, FieldEmbedDepth).Default),
		},
	}
}

func (in Input) value(cat Category, field string) (float64, bool) {
	switch cat {
	case CategoryConcrete:
		d := in.ConcreteDimensions
		switch field {
		case FieldWidth:
			return d.Width, true
		case FieldHeight:
			return d.Height, true
		case FieldDepth:
			return d.Depth, true
		case FieldThickness:
			return d.Thickness, true
		}
	case CategoryAnchor:
		a := in.AnchorDimensions
		switch field {
		case FieldWidth:
			return a.Width, true
		case FieldHeight:
			return a.Height, true
		case FieldDepth:
			return a.Depth, true
		case FieldEmbedDepth:
			return a.EmbedDepth, true
		}
	case CategoryProperties:
		if field == FieldCovering {
			return in.ConcreteProperties.Covering, true
		}
	}
	return 0, false
}

// with returns a copy of in with one numeric field replaced.
func (in Input) with(cat Category, field string, v float64) Input {
	switch cat {
	case CategoryConcrete:
		switch field {
		case FieldWidth:
			in.ConcreteDimensions.Width = v
		case FieldHeight:
			in.ConcreteDimensions.Height = v
		case FieldDepth:
			in.ConcreteDimensions.Depth = v
		case FieldThickness:
			in.ConcreteDimensions.Thickness = v
		}
	case CategoryAnchor:
		switch field {
		case FieldWidth:
			in.AnchorDimensions.Width = v
		case FieldHeight:
			in.AnchorDimensions.Height = v
		case FieldDepth:
			in.AnchorDimensions.Depth = v
		case FieldEmbedDepth:
			in.AnchorDimensions.EmbedDepth = v
		}
	case CategoryProperties:
		if field == FieldCovering {
			in.ConcreteProperties.Covering = v
		}
	}
	return in
}
