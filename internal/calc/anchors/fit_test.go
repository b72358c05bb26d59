package anchors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFit(t *testing.T) {
	concrete := ConcreteDimensions{Width: 500, Height: 500, Depth: 500, Thickness: 300}

	tests := []struct {
		name   string
		anchor AnchorDimensions
		errors []string
	}{
		{
			name:   "fits",
			anchor: AnchorDimensions{Width: 50, Height: 80, Depth: 50, EmbedDepth: 70},
			errors: []string{},
		},
		{
			name:   "embed exactly at limit",
			anchor: AnchorDimensions{Width: 500, Height: 80, Depth: 500, EmbedDepth: 290},
			errors: []string{},
		},
		{
			name:   "width",
			anchor: AnchorDimensions{Width: 501, Height: 80, Depth: 50, EmbedDepth: 70},
			errors: []string{"Anchor width exceeds concrete width"},
		},
		{
			name:   "depth",
			anchor: AnchorDimensions{Width: 50, Height: 80, Depth: 600, EmbedDepth: 70},
			errors: []string{"Anchor depth exceeds concrete depth"},
		},
		{
			name:   "all rules in order",
			anchor: AnchorDimensions{Width: 600, Height: 80, Depth: 600, EmbedDepth: 291},
			errors: []string{
				"Anchor width exceeds concrete width",
				"Anchor depth exceeds concrete depth",
				"Embedment depth exceeds maximum allowed (290mm)",
			},
		},
		{
			name:   "height is not checked",
			anchor: AnchorDimensions{Width: 50, Height: 5000, Depth: 50, EmbedDepth: 70},
			errors: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFit(concrete, tt.anchor)
			assert.Equal(t, tt.errors, got.Errors)
			assert.Equal(t, len(tt.errors) == 0, got.IsValid)
			if got.IsValid {
				assert.NoError(t, got.Err())
			} else {
				assert.Error(t, got.Err())
			}
		})
	}
}

func TestValidateFit_FractionalLimit(t *testing.T) {
	got := ValidateFit(
		ConcreteDimensions{Width: 500, Height: 500, Depth: 500, Thickness: 150.5},
		AnchorDimensions{Width: 50, Height: 80, Depth: 50, EmbedDepth: 141},
	)
	assert.Equal(t, []string{"Embedment depth exceeds maximum allowed (140.5mm)"}, got.Errors)
}

func TestValidateFit_AcceptedMeansEmbedWithinMargin(t *testing.T) {
	for thickness := 100.0; thickness <= 1000; thickness += 45 {
		for embed := 20.0; embed <= 280; embed += 10 {
			concrete := ConcreteDimensions{Width: 500, Height: 500, Depth: 500, Thickness: thickness}
			anchor := AnchorDimensions{Width: 50, Height: 80, Depth: 50, EmbedDepth: embed}
			if ValidateFit(concrete, anchor).IsValid {
				assert.LessOrEqual(t, embed, thickness-SafetyMargin)
			}
		}
	}
}
