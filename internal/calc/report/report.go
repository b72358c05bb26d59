package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"Anchora/internal/calc/anchors"

	"github.com/phpdave11/gofpdf"
)

const defaultTitle = "Anchor Capacity Report"

type Request struct {
	Project string        `json:"project"`
	Author  string        `json:"author"`
	Title   string        `json:"title"`
	Notes   string        `json:"notes"`
	Input   anchors.Input `json:"input"`
}

type row struct {
	label, value string
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " mm"
}

func inputRows(in anchors.Input) []row {
	c, p, a := in.ConcreteDimensions, in.ConcreteProperties, in.AnchorDimensions
	return []row{
		{"Concrete width", mm(c.Width)},
		{"Concrete height", mm(c.Height)},
		{"Concrete depth", mm(c.Depth)},
		{"Slab thickness", mm(c.Thickness)},
		{"Concrete grade", string(p.Quality)},
		{"Cover", mm(p.Covering)},
		{"Base material", string(p.BaseMaterial)},
		{"Anchor width", mm(a.Width)},
		{"Anchor height", mm(a.Height)},
		{"Anchor depth", mm(a.Depth)},
		{"Embedment depth", mm(a.EmbedDepth)},
	}
}

func resultRows(res anchors.Result) []row {
	e := res.EdgeDistances
	s := res.StrengthValues
	edge := "No"
	if res.IsEdgeAnchor {
		edge = "Yes"
	}
	return []row{
		{"Tension capacity", fmt.Sprintf("%d kN", res.TensionCapacity)},
		{"Shear capacity", fmt.Sprintf("%d kN", res.ShearCapacity)},
		{"Edge anchor", edge},
		{"Edge distance c1,1", mm(e.C1_1)},
		{"Edge distance c1,2", mm(e.C1_2)},
		{"Edge distance c2,1", mm(e.C2_1)},
		{"Edge distance c2,2", mm(e.C2_2)},
		{"fck (cylinder)", fmt.Sprintf("%d MPa", s.CylindricalStrength)},
		{"fck,cube", fmt.Sprintf("%d MPa", s.CubicStrength)},
		{"fctm", fmt.Sprintf("%.2f MPa", s.TensileStrength)},
	}
}

// Render evaluates req.Input and writes the report as a PDF.
func Render(w io.Writer, req Request, now time.Time) error {
	if req.Title == "" {
		req.Title = defaultTitle
	}
	ev := anchors.Evaluate(req.Input)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(req.Title, false)
	pdf.SetAuthor(req.Author, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, req.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", req.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", req.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format(time.DateOnly)))
	pdf.Ln(10)

	section(pdf, "Configuration")
	table(pdf, inputRows(req.Input))

	if ev.Result == nil {
		section(pdf, "Configuration does not fit")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(180, 0, 0)
		for _, msg := range ev.Validation.Errors {
			pdf.MultiCell(0, 6, "- "+msg, "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	} else {
		section(pdf, "Results")
		table(pdf, resultRows(*ev.Result))
	}

	if req.Notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, req.Notes, "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, anchors.Disclaimer, "", "L", false)

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func table(pdf *gofpdf.Fpdf, rows []row) {
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(70, 7, r.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, r.value, "1", 1, "R", false, 0, "")
	}
}
