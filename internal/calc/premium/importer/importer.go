package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Anchora/internal/calc/anchors"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("sheet has no data rows")

// Columns is the header row of both the import template and the export.
var Columns = []string{
	"Concrete width (mm)",
	"Concrete height (mm)",
	"Concrete depth (mm)",
	"Slab thickness (mm)",
	"Concrete grade",
	"Cover (mm)",
	"Base material",
	"Anchor width (mm)",
	"Anchor height (mm)",
	"Anchor depth (mm)",
	"Embedment depth (mm)",
}

var resultColumns = []string{
	"Valid",
	"Tension (kN)",
	"Shear (kN)",
	"Edge anchor",
	"Min edge distance (mm)",
	"Errors",
}

// Row is one parsed data row; Line is the 1-based sheet row.
type Row struct {
	Line  int           `json:"line"`
	Input anchors.Input `json:"input"`
}

type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// ParseWorkbook reads the first sheet. The first row is a header. Blank rows
// are skipped and rows that cannot be read are reported, not fatal.
func ParseWorkbook(r io.Reader) ([]Row, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrEmptySheet
	}

	var out []Row
	var bad []RowError
	for i := 1; i < len(rows); i++ {
		line := i + 1
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		if err != nil {
			bad = append(bad, RowError{Line: line, Message: err.Error()})
			continue
		}
		out = append(out, Row{Line: line, Input: in})
	}
	return out, bad, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (anchors.Input, error) {
	if len(row) < len(Columns) {
		return anchors.Input{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))
	}

	nums := make([]float64, len(Columns))
	for i, col := range Columns {
		if i == 4 || i == 6 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return anchors.Input{}, fmt.Errorf("%s: not a number: %q", col, row[i])
		}
		nums[i] = v
	}

	grade := anchors.Grade(strings.ToUpper(strings.TrimSpace(row[4])))
	if _, err := anchors.ParseGrade(grade); err != nil {
		return anchors.Input{}, err
	}
	material, err := parseBaseMaterial(row[6])
	if err != nil {
		return anchors.Input{}, err
	}

	return anchors.Input{
		ConcreteDimensions: anchors.ConcreteDimensions{
			Width:     nums[0],
			Height:    nums[1],
			Depth:     nums[2],
			Thickness: nums[3],
		},
		ConcreteProperties: anchors.ConcreteProperties{
			Quality:      grade,
			Covering:     nums[5],
			BaseMaterial: material,
		},
		AnchorDimensions: anchors.AnchorDimensions{
			Width:      nums[7],
			Height:     nums[8],
			Depth:      nums[9],
			EmbedDepth: nums[10],
		},
	}, nil
}

func parseBaseMaterial(s string) (anchors.BaseMaterial, error) {
	s = strings.TrimSpace(s)
	for _, m := range anchors.BaseMaterialOptions {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown base material %q", s)
}

// WriteResults writes one sheet with the inputs of rows followed by the
// matching evaluation. rows and evals must be the same length.
func WriteResults(w io.Writer, rows []Row, evals []anchors.Evaluation) error {
	if len(rows) != len(evals) {
		return fmt.Errorf("rows/results mismatch: %d vs %d", len(rows), len(evals))
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := make([]any, 0, len(Columns)+len(resultColumns))
	for _, c := range Columns {
		header = append(header, c)
	}
	for _, c := range resultColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := append(inputCells(r.Input), resultCells(evals[i])...)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func inputCells(in anchors.Input) []any {
	c, p, a := in.ConcreteDimensions, in.ConcreteProperties, in.AnchorDimensions
	return []any{
		c.Width, c.Height, c.Depth, c.Thickness,
		string(p.Quality), p.Covering, string(p.BaseMaterial),
		a.Width, a.Height, a.Depth, a.EmbedDepth,
	}
}

func resultCells(ev anchors.Evaluation) []any {
	if ev.Result == nil {
		return []any{"No", "", "", "", "", strings.Join(ev.Validation.Errors, "; ")}
	}
	res := ev.Result
	edge := "No"
	if res.IsEdgeAnchor {
		edge = "Yes"
	}
	return []any{"Yes", res.TensionCapacity, res.ShearCapacity, edge, res.EdgeDistances.Min(), ""}
}
