// Package charts renders the comparison radar and the prediction
// explanation chart embedded in chart style reports.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/cardioinsight/riskservice/canvas"
	"github.com/cardioinsight/riskservice/explain"
	"github.com/cardioinsight/riskservice/fonts"
	"github.com/cardioinsight/riskservice/patients"
)

// Config holds the rendering parameters shared by both charts.
type Config struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	FontSize     float64
	TitleSize    float64
}

func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		MarginTop:    80,
		MarginRight:  60,
		MarginBottom: 60,
		MarginLeft:   110,
		FontSize:     16,
		TitleSize:    22,
	}
}

// plotArea returns the usable drawing area.
func (c Config) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

var (
	chartBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	chartText       = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	chartGrid       = color.RGBA{R: 224, G: 224, B: 224, A: 255}
	chartAxis       = color.RGBA{R: 63, G: 63, B: 63, A: 255}

	patientLine = color.RGBA{G: 128, B: 128, A: 255}
	patientFill = color.NRGBA{G: 128, B: 128, A: 70}
	averageLine = color.NRGBA{A: 51}
	averageFill = color.NRGBA{A: 30}

	increaseColor = color.RGBA{R: 255, G: 65, B: 54, A: 255}
	decreaseColor = color.RGBA{R: 46, G: 204, B: 64, A: 255}
)

// radarCategories are the population comparison axes, in presentation order.
var radarCategories = []string{
	patients.FeatureAge,
	patients.FeatureRestingBP,
	patients.FeatureCholesterol,
	patients.FeatureMaxHeartRate,
	patients.FeatureSTDepression,
}

// normalizationCeilings scale each axis so 100 marks the top of its
// clinically plausible range.
var normalizationCeilings = map[string]float64{
	patients.FeatureAge:          100,
	patients.FeatureRestingBP:    200,
	patients.FeatureCholesterol:  570,
	patients.FeatureMaxHeartRate: 220,
	patients.FeatureSTDepression: 6.2,
}

// Generator renders chart images with a shared font library.
type Generator struct {
	fonts  *fonts.Library
	config Config
}

func NewGenerator(fonts *fonts.Library) *Generator {
	return &Generator{fonts: fonts, config: DefaultConfig()}
}

// Radar draws the patient's values against the population averages on a
// five axis radar, each axis normalized to a 0 to 100 scale.
func (g *Generator) Radar(record patients.Record) image.Image {
	cfg := g.config
	cnv := canvas.New(cfg.Width, cfg.Height, chartBackground)

	titleFace := g.fonts.Face(cfg.TitleSize, true)
	labelFace := g.fonts.Face(cfg.FontSize, false)
	cnv.TextCentered(cfg.Width/2, 16, "Patient vs. Averages (Normalized %)", titleFace, chartText)

	_, py, _, ph := cfg.plotArea()
	cx := cfg.Width / 2
	cy := py + ph/2
	radius := float64(ph)/2 - 24
	n := len(radarCategories)

	// Concentric grid rings and spokes.
	for _, ring := range []float64{20, 40, 60, 80, 100} {
		for i := 0; i < n; i++ {
			p1 := radarPoint(cx, cy, radius, ring/100, i, n)
			p2 := radarPoint(cx, cy, radius, ring/100, (i+1)%n, n)
			cnv.Line(p1.X, p1.Y, p2.X, p2.Y, 1, chartGrid)
		}
		tick := radarPoint(cx, cy, radius, ring/100, 0, n)
		cnv.TextRight(tick.X-6, tick.Y-8, fmt.Sprintf("%.0f", ring), labelFace, chartText)
	}
	for i := 0; i < n; i++ {
		edge := radarPoint(cx, cy, radius, 1, i, n)
		cnv.Line(cx, cy, edge.X, edge.Y, 1, chartGrid)
		label := radarPoint(cx, cy, radius+34, 1, i, n)
		cnv.TextCentered(label.X, label.Y-10, radarCategories[i], labelFace, chartText)
	}

	g.radarPolygon(cnv, cx, cy, radius, normalized(patients.PopulationAverages), averageLine, averageFill)
	g.radarPolygon(cnv, cx, cy, radius, normalized(record.Features()), patientLine, patientFill)

	// Legend above the plot, left aligned.
	cnv.FillRect(60, 46, 18, 18, patientLine)
	cnv.Text(86, 46, "Patient Values", labelFace, chartText)
	cnv.FillRect(60, 72, 18, 18, averageLine)
	cnv.Text(86, 72, "Population Averages", labelFace, chartText)

	return cnv.Image()
}

func (g *Generator) radarPolygon(cnv *canvas.Canvas, cx, cy int, radius float64, values []float64, outline, fill color.Color) {
	points := make([]image.Point, len(values))
	for i, v := range values {
		points[i] = radarPoint(cx, cy, radius, v/100, i, len(values))
	}
	cnv.FillPolygon(points, fill)
	for i := range points {
		next := points[(i+1)%len(points)]
		cnv.Line(points[i].X, points[i].Y, next.X, next.Y, 3, outline)
	}
}

// radarPoint maps an axis index and a radial fraction to canvas
// coordinates. The first axis points straight up and the rest follow
// clockwise.
func radarPoint(cx, cy int, radius, fraction float64, index, total int) image.Point {
	angle := -math.Pi/2 + 2*math.Pi*float64(index)/float64(total)
	return image.Point{
		X: cx + int(math.Round(radius*fraction*math.Cos(angle))),
		Y: cy + int(math.Round(radius*fraction*math.Sin(angle))),
	}
}

func normalized(features map[string]float64) []float64 {
	values := make([]float64, len(radarCategories))
	for i, category := range radarCategories {
		values[i] = clamp(features[category]/normalizationCeilings[category]*100, 0, 100)
	}
	return values
}

// Contributions draws each feature's attribution as a signed horizontal
// bar, red when it pushed the predicted risk up and green when it pulled
// it down.
func (g *Generator) Contributions(attribution explain.Attribution) image.Image {
	cfg := g.config
	cnv := canvas.New(cfg.Width, cfg.Height, chartBackground)

	titleFace := g.fonts.Face(cfg.TitleSize, true)
	labelFace := g.fonts.Face(cfg.FontSize, false)
	cnv.TextCentered(cfg.Width/2, 16, "Key Factors Influencing Prediction", titleFace, chartText)

	rows := len(attribution.Contributions)
	if rows == 0 {
		cnv.TextCentered(cfg.Width/2, cfg.Height/2, "No contribution data available", labelFace, chartText)
		return cnv.Image()
	}

	px, py, pw, ph := cfg.plotArea()

	// A symmetric scale keeps zero centered even when every factor leans
	// the same way.
	maxAbs := 0.0
	for _, c := range attribution.Contributions {
		maxAbs = math.Max(maxAbs, math.Abs(c.Contribution))
	}
	if maxAbs == 0 {
		maxAbs = 0.1
	}
	maxAbs *= 1.1

	xZero := px + pw/2
	scale := float64(pw/2) / maxAbs

	rowHeight := ph / rows
	barHeight := rowHeight * 6 / 10

	for i, c := range attribution.Contributions {
		rowY := py + i*rowHeight
		barY := rowY + (rowHeight-barHeight)/2
		width := int(math.Round(math.Abs(c.Contribution) * scale))
		if c.Contribution >= 0 {
			cnv.FillRect(xZero, barY, width, barHeight, increaseColor)
		} else {
			cnv.FillRect(xZero-width, barY, width, barHeight, decreaseColor)
		}
		cnv.TextRight(px-8, barY+barHeight/2-10, c.Feature, labelFace, chartText)
	}

	cnv.Line(xZero, py, xZero, py+ph, 2, chartAxis)

	cnv.Text(px, py+ph+8, fmt.Sprintf("%.2f", -maxAbs), labelFace, chartText)
	cnv.TextCentered(xZero, py+ph+8, "0.00", labelFace, chartText)
	cnv.TextRight(px+pw, py+ph+8, fmt.Sprintf("%.2f", maxAbs), labelFace, chartText)
	cnv.TextCentered(px+pw/2, py+ph+32, "Contribution to Risk Probability", labelFace, chartText)

	return cnv.Image()
}

// EncodePNG serializes a chart for the image endpoints and data URIs.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
