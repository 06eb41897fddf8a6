// Package pdfreport renders grouped complaint reports into a PDF document:
// a title, a chart image and a two-column data table.
package pdfreport

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/qmdesk/complaint-service/internal/config"
	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/pkg/util"
)

// ErrNoData is returned when there is nothing to render.
var ErrNoData = errors.New("pdfreport: empty series")

// Options controls a single export.
type Options struct {
	Title    string
	Chart    domain.ChartType
	LogScale bool
	IsCost   bool
}

// Renderer produces a PDF from a report series.
type Renderer interface {
	Render(series []domain.SeriesPoint, opts Options) ([]byte, error)
}

type reportRenderer struct {
	cfg config.ReportConfig
}

// NewRenderer builds a renderer. When cfg.FontPath names a TTF it is
// embedded so accented Hungarian labels render correctly; without it the
// built-in core font and its codepage translator are used.
func NewRenderer(cfg config.ReportConfig) Renderer {
	return &reportRenderer{cfg: cfg}
}

func (r *reportRenderer) Render(series []domain.SeriesPoint, opts Options) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}

	png, err := renderChart(series, opts.Chart, opts.LogScale)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")

	family := "Helvetica"
	translate := func(s string) string { return s }
	if r.cfg.FontPath != "" {
		family = r.cfg.FontName
		pdf.AddUTF8Font(family, "", r.cfg.FontPath)
	} else {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()

	pdf.SetFont(family, "", 18)
	pdf.CellFormat(0, 12, translate("Reklamációs Riport: "+opts.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", imgOpts, bytes.NewReader(png))
	pdf.ImageOptions("chart", 15, pdf.GetY(), 180, 0, true, imgOpts, 0, "")
	pdf.Ln(8)

	pdf.SetFont(family, "", 10)
	pdf.SetFillColor(211, 211, 211)
	pdf.CellFormat(135, 8, translate("Kategória / Időszak"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, translate("Érték"), "1", 1, "R", true, 0, "")

	for _, point := range series {
		formatted := util.FormatCount(point.Value)
		if opts.IsCost {
			formatted = util.FormatCurrency(point.Value)
		}
		pdf.CellFormat(135, 8, translate(point.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, formatted, "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
