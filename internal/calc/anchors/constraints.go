package anchors

import (
	"fmt"
	"slices"
)

// SafetyMargin is the concrete left below the anchor tip (mm).
const SafetyMargin = 10

type Category string

const (
	CategoryConcrete   Category = "concrete"
	CategoryAnchor     Category = "anchor"
	CategoryProperties Category = "properties"
)

const (
	FieldWidth      = "width"
	FieldHeight     = "height"
	FieldDepth      = "depth"
	FieldThickness  = "thickness"
	FieldEmbedDepth = "embedDepth"
	FieldCovering   = "covering"

	FieldQuality      = "quality"
	FieldBaseMaterial = "baseMaterial"
)

type Range struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

func (r Range) Clamp(v int) int {
	return min(max(v, r.Min), r.Max)
}

type Constraint struct {
	Category Category `json:"category"`
	Field    string   `json:"field"`
	Range
}

// Order matters: Normalize walks the table top to bottom, so thickness
// must come before the anchor fields it bounds.
var table = []Constraint{
	{CategoryConcrete, FieldWidth, Range{100, 2000, 500}},
	{CategoryConcrete, FieldHeight, Range{100, 2000, 500}},
	{CategoryConcrete, FieldDepth, Range{100, 2000, 500}},
	{CategoryConcrete, FieldThickness, Range{100, 1000, 300}},
	{CategoryAnchor, FieldWidth, Range{20, 200, 50}},
	{CategoryAnchor, FieldHeight, Range{40, 300, 80}},
	{CategoryAnchor, FieldDepth, Range{20, 200, 50}},
	{CategoryAnchor, FieldEmbedDepth, Range{20, 280, 70}},
	{CategoryProperties, FieldCovering, Range{10, 100, 25}},
}

// Constraints returns a copy of the full table in evaluation order.
func Constraints() []Constraint {
	return slices.Clone(table)
}

func Lookup(cat Category, field string) (Range, bool) {
	for _, c := range table {
		if c.Category == cat && c.Field == field {
			return c.Range, true
		}
	}
	return Range{}, false
}

// MustLookup panics on a pair missing from the table. Callers handling
// external input check Lookup first.
func MustLookup(cat Category, field string) Range {
	r, ok := Lookup(cat, field)
	if !ok {
		panic(fmt.Sprintf("anchors: no constraint for %s.%s", cat, field))
	}
	return r
}

// MaxEmbedDepth is the deepest embedment the block can take.
func MaxEmbedDepth(concrete ConcreteDimensions) float64 {
	return concrete.Thickness - SafetyMargin
}
