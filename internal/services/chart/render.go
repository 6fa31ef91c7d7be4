package chart

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"StockLens/internal/domain/models"
)

// MinPoints is the fewest price points that can be drawn as a line.
const MinPoints = 2

// ErrNotEnoughPoints is returned when the price trace cannot form a line.
var ErrNotEnoughPoints = fmt.Errorf("chart needs at least %d data points", MinPoints)

// Renderer draws ChartSpecs as PNG images. Candlestick and OHLC traces are
// drawn as their close line.
type Renderer struct {
	width  int
	height int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image dimensions in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// NewRenderer creates a renderer with a 1000x500 canvas by default.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: 1000, height: 500}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderPNG renders spec and returns the PNG bytes.
func (r *Renderer) RenderPNG(spec *models.ChartSpec) ([]byte, error) {
	if spec == nil || len(spec.Traces) == 0 {
		return nil, ErrNotEnoughPoints
	}

	var series []gochart.Series
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, tr := range spec.Traces {
		x, y := points(tr)
		if len(x) < MinPoints {
			if i == 0 {
				return nil, fmt.Errorf("%w, got %d", ErrNotEnoughPoints, len(x))
			}
			continue
		}
		for _, v := range y {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		series = append(series, gochart.TimeSeries{
			Name:    tr.Name,
			Style:   style(tr),
			XValues: x,
			YValues: y,
		})
	}

	graph := gochart.Chart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name: spec.YAxisTitle,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
	}
	if lo == hi {
		graph.YAxis.Range = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	if spec.Volume != nil {
		x, y := points(*spec.Volume)
		if len(x) >= 2 {
			series = append(series, gochart.TimeSeries{
				Name:    spec.Volume.Name,
				YAxis:   gochart.YAxisSecondary,
				XValues: x,
				YValues: y,
				Style: gochart.Style{
					StrokeColor: hexColor(ColorUp).WithAlpha(80),
					FillColor:   hexColor(ColorUp).WithAlpha(50),
					StrokeWidth: 1,
				},
			})
		}
	}

	graph.Series = series
	graph.Elements = []gochart.Renderable{gochart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// points returns the drawable (x, y) pairs of a trace, skipping gaps.
func points(tr models.ChartTrace) ([]time.Time, []float64) {
	var x []time.Time
	var y []float64
	switch tr.Type {
	case models.TraceCandlestick, models.TraceOHLC:
		for i, c := range tr.Close {
			if i < len(tr.X) && !math.IsNaN(c) {
				x = append(x, tr.X[i])
				y = append(y, c)
			}
		}
	default:
		for i, v := range tr.Y {
			if i < len(tr.X) && v != nil && !math.IsNaN(*v) {
				x = append(x, tr.X[i])
				y = append(y, *v)
			}
		}
	}
	return x, y
}

func style(tr models.ChartTrace) gochart.Style {
	color := tr.Color
	if color == "" {
		color = ColorPrice
	}
	width := tr.Width
	if width <= 0 {
		width = 2
	}
	s := gochart.Style{StrokeColor: hexColor(color), StrokeWidth: width}
	switch tr.Dash {
	case "dash":
		s.StrokeDashArray = []float64{5, 3}
	case "dot":
		s.StrokeDashArray = []float64{1, 3}
	}
	if tr.Fill == "tozeroy" {
		s.FillColor = hexColor(color).WithAlpha(40)
	}
	return s
}

func hexColor(h string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(h, "#"))
}
