package anchors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

type SideEffect struct {
	Category Category `json:"category"`
	Field    string   `json:"field"`
	Value    int      `json:"value"`
}

// Update is a clamped field value together with the dependent fields it forces.
type Update struct {
	Category    Category     `json:"category"`
	Field       string       `json:"field"`
	Value       int          `json:"value"`
	SideEffects []SideEffect `json:"sideEffects,omitempty"`
}

// Apply returns a copy of in with the update and its side effects written.
func (u Update) Apply(in Input) Input {
	in = in.with(u.Category, u.Field, float64(u.Value))
	for _, se := range u.SideEffects {
		in = in.with(se.Category, se.Field, float64(se.Value))
	}
	return in
}

// Clamp turns a raw field edit into an Update. ok is false when raw is not a
// number; the caller then keeps its previous value. The category/field pair
// must exist in the constraint table.
func Clamp(cat Category, field, raw string, concrete ConcreteDimensions, anchor AnchorDimensions) (u Update, ok bool) {
	v, ok := parseInt(raw)
	if !ok {
		return Update{}, false
	}
	return ClampValue(cat, field, v, concrete, anchor), true
}

func ClampValue(cat Category, field string, v int, concrete ConcreteDimensions, anchor AnchorDimensions) Update {
	v = MustLookup(cat, field).Clamp(v)

	// The thickness cap goes last so it still holds when it is below the
	// table minimum.
	if cat == CategoryAnchor && field == FieldEmbedDepth {
		if limit := MaxEmbedDepth(concrete); float64(v) > limit {
			v = int(math.Floor(limit))
		}
	}

	u := Update{Category: cat, Field: field, Value: v}
	if cat == CategoryConcrete && field == FieldThickness {
		limit := v - SafetyMargin
		if anchor.EmbedDepth > float64(limit) {
			u.SideEffects = append(u.SideEffects, SideEffect{
				Category: CategoryAnchor,
				Field:    FieldEmbedDepth,
				Value:    limit,
			})
		}
	}
	return u
}

// SetProperty applies a non-numeric property edit. Covering goes through the
// constraint table; quality and base material are taken as given.
func SetProperty(props ConcreteProperties, field, raw string) (ConcreteProperties, bool) {
	switch field {
	case FieldQuality:
		props.Quality = Grade(raw)
	case FieldBaseMaterial:
		props.BaseMaterial = BaseMaterial(raw)
	case FieldCovering:
		v, ok := parseInt(raw)
		if !ok {
			return props, false
		}
		props.Covering = float64(MustLookup(CategoryProperties, FieldCovering).Clamp(v))
	default:
		return props, false
	}
	return props, true
}

// Normalize re-clamps every numeric field of in, concrete first, so that a
// configuration loaded from outside satisfies the constraint table and the
// embedment invariant.
func Normalize(in Input) Input {
	for _, c := range table {
		cur, _ := in.value(c.Category, c.Field)
		u := ClampValue(c.Category, c.Field, truncate(cur), in.ConcreteDimensions, in.AnchorDimensions)
		in = u.Apply(in)
	}
	return in
}

// parseInt reads the leading decimal integer of a form value, so "250mm"
// is 250 and "1e3" is 1. Leading space and a sign are allowed; without a
// digit there is no number.
func parseInt(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, false
	}
	return saturate(s[:n], neg), true
}

// saturate converts a run of digits, pinning values outside int32.
func saturate(digits string, neg bool) int {
	v, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		v = math.MaxInt32
		if neg {
			return math.MinInt32
		}
	}
	if neg {
		v = -v
	}
	return int(v)
}

func truncate(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Max(math.Min(f, math.MaxInt32), math.MinInt32)
	return int(f)
}
