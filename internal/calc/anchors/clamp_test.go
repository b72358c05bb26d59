package anchors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp_NonNumericIsNoOp(t *testing.T) {
	in := DefaultInput()
	for _, raw := range []string{"", "abc", " ", "NaN", "-Inf", "-", "+", "mm250", ".5", "- 5"} {
		_, ok := Clamp(CategoryConcrete, FieldWidth, raw, in.ConcreteDimensions, in.AnchorDimensions)
		assert.False(t, ok, "raw %q", raw)
	}
}

func TestClamp_RangeBounds(t *testing.T) {
	in := DefaultInput()
	tests := []struct {
		cat   Category
		field string
		raw   string
		want  int
	}{
		{CategoryConcrete, FieldWidth, "50", 100},
		{CategoryConcrete, FieldWidth, "2500", 2000},
		{CategoryConcrete, FieldWidth, " 750 ", 750},
		{CategoryConcrete, FieldHeight, "640.9", 640},
		{CategoryAnchor, FieldHeight, "10", 40},
		{CategoryAnchor, FieldDepth, "99999999999999999999", 200},
		{CategoryAnchor, FieldDepth, "-99999999999999999999", 20},
		{CategoryConcrete, FieldWidth, "250mm", 250},
		{CategoryConcrete, FieldWidth, "1e3", 100},
		{CategoryProperties, FieldCovering, "12abc", 12},
		{CategoryProperties, FieldCovering, "0x10", 10},
		{CategoryAnchor, FieldHeight, "+40", 40},
		{CategoryAnchor, FieldHeight, "\t 60.9cm", 60},
		{CategoryProperties, FieldCovering, "5", 10},
		{CategoryProperties, FieldCovering, "101", 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s.%s=%s", tt.cat, tt.field, tt.raw), func(t *testing.T) {
			u, ok := Clamp(tt.cat, tt.field, tt.raw, in.ConcreteDimensions, in.AnchorDimensions)
			require.True(t, ok)
			assert.Equal(t, tt.want, u.Value)
			assert.Empty(t, u.SideEffects)
		})
	}
}

func TestClamp_EmbedDepthCappedByThickness(t *testing.T) {
	in := DefaultInput()
	in.ConcreteDimensions.Thickness = 150

	u, ok := Clamp(CategoryAnchor, FieldEmbedDepth, "200", in.ConcreteDimensions, in.AnchorDimensions)
	require.True(t, ok)
	assert.Equal(t, 140, u.Value, "thickness bound is tighter than the table max")

	in.ConcreteDimensions.Thickness = 1000
	u, _ = Clamp(CategoryAnchor, FieldEmbedDepth, "500", in.ConcreteDimensions, in.AnchorDimensions)
	assert.Equal(t, 280, u.Value, "table max is tighter than the thickness bound")
}

func TestClamp_EmbedDepthThicknessCapBelowTableMin(t *testing.T) {
	in := DefaultInput()
	in.ConcreteDimensions.Thickness = 25

	u, ok := Clamp(CategoryAnchor, FieldEmbedDepth, "70", in.ConcreteDimensions, in.AnchorDimensions)
	require.True(t, ok)
	assert.Equal(t, 15, u.Value)

	out := u.Apply(in)
	assert.LessOrEqual(t, out.AnchorDimensions.EmbedDepth, MaxEmbedDepth(out.ConcreteDimensions))
}

func TestClamp_ThicknessShrinkMovesEmbedDepth(t *testing.T) {
	in := DefaultInput()
	in.AnchorDimensions.EmbedDepth = 280
	in.ConcreteDimensions.Thickness = 1000

	for thickness := 100; thickness < 290; thickness += 7 {
		u, ok := Clamp(CategoryConcrete, FieldThickness, fmt.Sprint(thickness), in.ConcreteDimensions, in.AnchorDimensions)
		require.True(t, ok)
		require.Len(t, u.SideEffects, 1, "thickness %d", thickness)
		assert.Equal(t, SideEffect{Category: CategoryAnchor, Field: FieldEmbedDepth, Value: thickness - SafetyMargin}, u.SideEffects[0])

		out := u.Apply(in)
		assert.Equal(t, float64(thickness), out.ConcreteDimensions.Thickness)
		assert.True(t, ValidateFit(out.ConcreteDimensions, out.AnchorDimensions).IsValid)
	}
}

func TestClamp_ThicknessWithRoomHasNoSideEffect(t *testing.T) {
	in := DefaultInput()
	u, ok := Clamp(CategoryConcrete, FieldThickness, "80", in.ConcreteDimensions, in.AnchorDimensions)
	require.True(t, ok)
	assert.Equal(t, 100, u.Value)
	assert.Empty(t, u.SideEffects, "embed 70 still fits under 100-10")
}

func TestClamp_Idempotent(t *testing.T) {
	base := DefaultInput()
	base.AnchorDimensions.EmbedDepth = 250
	base.ConcreteDimensions.Thickness = 400

	for _, c := range Constraints() {
		for _, raw := range []string{"-5", "0", "35", "95", "150", "260", "299", "1200", "5000"} {
			u1, ok := Clamp(c.Category, c.Field, raw, base.ConcreteDimensions, base.AnchorDimensions)
			require.True(t, ok)
			again, _ := Clamp(c.Category, c.Field, raw, base.ConcreteDimensions, base.AnchorDimensions)
			assert.Equal(t, u1, again)

			applied := u1.Apply(base)
			u2, _ := Clamp(c.Category, c.Field, fmt.Sprint(u1.Value), applied.ConcreteDimensions, applied.AnchorDimensions)
			assert.Equal(t, u1.Value, u2.Value, "%s.%s=%s", c.Category, c.Field, raw)
			assert.Empty(t, u2.SideEffects, "%s.%s=%s", c.Category, c.Field, raw)
		}
	}
}

func TestUpdate_ApplyDoesNotMutate(t *testing.T) {
	in := DefaultInput()
	in.AnchorDimensions.EmbedDepth = 200
	u := ClampValue(CategoryConcrete, FieldThickness, 120, in.ConcreteDimensions, in.AnchorDimensions)

	out := u.Apply(in)

	assert.Equal(t, 300.0, in.ConcreteDimensions.Thickness)
	assert.Equal(t, 200.0, in.AnchorDimensions.EmbedDepth)
	assert.Equal(t, 120.0, out.ConcreteDimensions.Thickness)
	assert.Equal(t, 110.0, out.AnchorDimensions.EmbedDepth)
}

func TestClamp_UnknownFieldPanics(t *testing.T) {
	in := DefaultInput()
	assert.Panics(t, func() {
		Clamp(CategoryConcrete, "length", "10", in.ConcreteDimensions, in.AnchorDimensions)
	})
}

func TestSetProperty(t *testing.T) {
	props := DefaultInput().ConcreteProperties

	got, ok := SetProperty(props, FieldQuality, "C40/50")
	require.True(t, ok)
	assert.Equal(t, Grade("C40/50"), got.Quality)

	got, ok = SetProperty(props, FieldBaseMaterial, string(NonCracked))
	require.True(t, ok)
	assert.Equal(t, NonCracked, got.BaseMaterial)

	got, ok = SetProperty(props, FieldCovering, "250")
	require.True(t, ok)
	assert.Equal(t, 100.0, got.Covering)

	got, ok = SetProperty(props, FieldCovering, "x")
	assert.False(t, ok)
	assert.Equal(t, props, got)

	_, ok = SetProperty(props, "colour", "red")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	in := Input{
		ConcreteDimensions: ConcreteDimensions{Width: 5000, Height: 20, Depth: 499.7, Thickness: 120},
		ConcreteProperties: ConcreteProperties{Quality: "C30/37", Covering: 0, BaseMaterial: NonCracked},
		AnchorDimensions:   AnchorDimensions{Width: 10, Height: 500, Depth: 50, EmbedDepth: 260},
	}

	out := Normalize(in)

	assert.Equal(t, ConcreteDimensions{Width: 2000, Height: 100, Depth: 499, Thickness: 120}, out.ConcreteDimensions)
	assert.Equal(t, AnchorDimensions{Width: 20, Height: 300, Depth: 50, EmbedDepth: 110}, out.AnchorDimensions)
	assert.Equal(t, 10.0, out.ConcreteProperties.Covering)
	assert.Equal(t, Grade("C30/37"), out.ConcreteProperties.Quality)
	assert.True(t, ValidateFit(out.ConcreteDimensions, out.AnchorDimensions).IsValid)
	assert.Equal(t, out, Normalize(out))
}
