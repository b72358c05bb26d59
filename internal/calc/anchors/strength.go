package anchors

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

var ErrInvalidGrade = errors.New("invalid concrete grade")

var gradePattern = regexp.MustCompile(`^C(\d+)/(\d+)$`)

// ParseGrade reads a "C<cylinder>/<cube>" designation.
func ParseGrade(g Grade) (StrengthValues, error) {
	m := gradePattern.FindStringSubmatch(string(g))
	if m == nil {
		return StrengthValues{}, fmt.Errorf("%w: %q", ErrInvalidGrade, g)
	}
	// Oversized strengths saturate like form values do.
	cyl, cube := saturate(m[1], false), saturate(m[2], false)
	return StrengthValues{
		CylindricalStrength: cyl,
		CubicStrength:       cube,
		TensileStrength:     TensileStrength(cyl),
	}, nil
}

// ParseStrength is ParseGrade with an all-zero result for unparseable input.
func ParseStrength(g Grade) StrengthValues {
	s, err := ParseGrade(g)
	if err != nil {
		return StrengthValues{}
	}
	return s
}

// TensileStrength approximates fctm = 0.3 * fck^(2/3).
func TensileStrength(fck int) float64 {
	return 0.3 * math.Pow(float64(fck), 2.0/3.0)
}
