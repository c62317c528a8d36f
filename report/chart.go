package report

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"

	"github.com/cardioinsight/riskservice/canvas"
	"github.com/cardioinsight/riskservice/fonts"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/risk"
)

// The chart page has room for five guidance rows.
const maxChartRecommendations = 5

// ChartRenderer composes the alternate summary page: side by side patient
// and risk panels, two embedded analysis charts and a compact guidance list.
// Geometry lives on a 100 by 150 unit grid with the origin at the bottom
// left, so the whole page scales with the configured canvas size. Font sizes
// are points against an A4 sheet width.
type ChartRenderer struct {
	layout Layout
	colors chartColors
	fonts  *fonts.Library
}

var _ Renderer = &ChartRenderer{}

type chartColors struct {
	primary   color.RGBA
	secondary color.RGBA
	success   color.RGBA
	warning   color.RGBA
	danger    color.RGBA
	light     color.RGBA
	border    color.RGBA
	text      color.RGBA
	white     color.RGBA
}

var chartPalette = chartColors{
	primary:   color.RGBA{R: 0x1e, G: 0x40, B: 0xaf, A: 0xff},
	secondary: color.RGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff},
	success:   color.RGBA{R: 0x05, G: 0x96, B: 0x69, A: 0xff},
	warning:   color.RGBA{R: 0xd9, G: 0x77, B: 0x06, A: 0xff},
	danger:    color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff},
	light:     color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff},
	border:    color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff},
	text:      color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff},
	white:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

func NewChartRenderer(layout Layout, library *fonts.Library) *ChartRenderer {
	return &ChartRenderer{
		layout: layout,
		colors: chartPalette,
		fonts:  library,
	}
}

func (c *ChartRenderer) Name() string {
	return RendererChart
}

func (c *ChartRenderer) Render(request Request) ([]byte, error) {
	page := canvas.New(c.layout.Width, c.layout.Height, c.colors.white)
	c.drawHeader(page, request)
	c.drawPatient(page, request)
	c.drawRisk(page, request)
	c.drawCharts(page, request)
	c.drawRecommendations(page, request)
	c.drawFooter(page)
	return page.EncodePNG()
}

func (c *ChartRenderer) drawHeader(page *canvas.Canvas, request Request) {
	tint := color.NRGBA{R: 0x1e, G: 0x40, B: 0xaf, A: 26}
	page.FillRect(c.ux(2), c.uy(148), c.uw(96), c.uh(8), tint)
	page.StrokeRect(c.ux(2), c.uy(148), c.uw(96), c.uh(8), c.lw(2), c.colors.primary)

	c.textMid(page, c.ux(4), 145, "CardioInsight AI", c.fonts.Face(c.pt(16), true), c.colors.primary)
	c.textMid(page, c.ux(4), 142, "Professional Cardiovascular Risk Assessment Report", c.fonts.Face(c.pt(11), false), c.colors.text)
	generated := "Generated: " + request.GeneratedAt.Format("2006-01-02 15:04")
	c.textMidRight(page, c.ux(96), 142, generated, c.fonts.Face(c.pt(9), false), c.colors.secondary)

	page.Line(c.ux(2), c.uy(139), c.ux(98), c.uy(139), c.lw(2), c.colors.primary)
}

func (c *ChartRenderer) drawPatient(page *canvas.Canvas, request Request) {
	page.FillRect(c.ux(2), c.uy(123), c.uw(47), c.uh(18), c.colors.white)
	page.StrokeRect(c.ux(2), c.uy(123), c.uw(47), c.uh(18), c.lw(1.5), c.colors.border)
	c.sectionTitle(page, c.ux(4), 123, "Patient Information")

	record := request.Record
	rows := []string{
		fmt.Sprintf("Age: %d years", record.Age),
		"Gender: " + patients.DescribeSex(record.Sex),
		"Chest Pain: " + patients.DescribeChestPain(record.ChestPainType),
		fmt.Sprintf("Resting BP: %d mmHg", record.RestingBP),
		fmt.Sprintf("Cholesterol: %d mg/dL", record.Cholesterol),
		fmt.Sprintf("Max HR: %d bpm", record.MaxHeartRate),
		"ST Depression: " + patients.FormatSTDepression(record.STDepression) + " mm",
	}
	face := c.fonts.Face(c.pt(9), false)
	for i, row := range rows {
		c.textMid(page, c.ux(4), 120-2.2*float64(i), row, face, c.colors.text)
	}
}

func (c *ChartRenderer) drawRisk(page *canvas.Canvas, request Request) {
	tier := request.Assessment.Tier
	tierColor := c.tierColor(tier)

	page.FillRect(c.ux(51), c.uy(123), c.uw(47), c.uh(18), c.colors.light)
	page.StrokeRect(c.ux(51), c.uy(123), c.uw(47), c.uh(18), c.lw(2.5), tierColor)
	c.sectionTitle(page, c.ux(53), 123, "Risk Assessment")

	probability := request.Assessment.Probability
	c.textMid(page, c.ux(53), 119, "Risk Level: "+tier.String(), c.fonts.Face(c.pt(11), true), tierColor)
	c.textMid(page, c.ux(53), 116, fmt.Sprintf("Probability: %.1f%%", probability*100), c.fonts.Face(c.pt(10), false), c.colors.text)

	page.FillRect(c.ux(53), c.uy(113.5), c.uw(40), c.uh(1.5), c.colors.border)
	page.FillRect(c.ux(53), c.uy(113.5), int(float64(c.uw(40))*probability), c.uh(1.5), tierColor)

	c.textMid(page, c.ux(53), 109, fmt.Sprintf("Risk Score: %.1f/100", probability*100), c.fonts.Face(c.pt(9), false), c.colors.text)
}

func (c *ChartRenderer) drawCharts(page *canvas.Canvas, request Request) {
	c.sectionTitle(page, c.ux(4), 82, "Analysis Charts")
	c.drawChartBox(page, c.ux(2), c.uy(80), c.uw(47), c.uh(25),
		"Patient Profile vs Population Average", "Radar Chart", request.RadarChart)
	c.drawChartBox(page, c.ux(51), c.uy(80), c.uw(47), c.uh(25),
		"Feature Importance Analysis", "Feature Importance", request.ContributionsChart)
}

// drawChartBox embeds a chart image aspect-fitted under a centered caption,
// or a placeholder notice when the image is missing.
func (c *ChartRenderer) drawChartBox(page *canvas.Canvas, x, y, width, height int, title, placeholder string, img image.Image) {
	page.FillRect(x, y, width, height, c.colors.light)
	page.StrokeRect(x, y, width, height, c.lw(1), c.colors.border)

	cx := x + width/2
	if img == nil {
		face := c.fonts.Face(c.pt(10), false)
		line := faceHeight(face)
		page.TextCentered(cx, y+height/2-line, placeholder, face, c.colors.secondary)
		page.TextCentered(cx, y+height/2+line/4, "Not Available", face, c.colors.secondary)
		return
	}

	titleFace := c.fonts.Face(c.pt(10), true)
	titleHeight := faceHeight(titleFace)
	page.TextCentered(cx, y+titleHeight/2, title, titleFace, c.colors.primary)

	inset := c.lw(1) + 10
	c.drawFitted(page, x+inset, y+2*titleHeight, width-2*inset, height-2*titleHeight-inset, img)
}

func (c *ChartRenderer) drawFitted(page *canvas.Canvas, x, y, width, height int, img image.Image) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || width <= 0 || height <= 0 {
		return
	}
	scale := math.Min(float64(width)/float64(bounds.Dx()), float64(height)/float64(bounds.Dy()))
	fitted := image.Pt(int(float64(bounds.Dx())*scale), int(float64(bounds.Dy())*scale))
	page.DrawImage(x+(width-fitted.X)/2, y+(height-fitted.Y)/2, fitted.X, fitted.Y, img)
}

func (c *ChartRenderer) drawRecommendations(page *canvas.Canvas, request Request) {
	page.FillRect(c.ux(2), c.uy(33), c.uw(96), c.uh(23), c.colors.white)
	page.StrokeRect(c.ux(2), c.uy(33), c.uw(96), c.uh(23), c.lw(1.5), c.colors.primary)
	c.sectionTitle(page, c.ux(4), 33, "Clinical Recommendations")

	recommendations := request.Assessment.Recommendations
	if len(recommendations) > maxChartRecommendations {
		recommendations = recommendations[:maxChartRecommendations]
	}

	face := c.fonts.Face(c.pt(9), false)
	for i, recommendation := range recommendations {
		y := 29 - 4*float64(i)
		if y <= 13 {
			break
		}
		lines := SplitRecommendation(recommendation.Text)
		c.textMid(page, c.ux(5), y, "• "+lines[0], face, c.colors.text)
		if len(lines) > 1 && y-1.2 > 13 {
			c.textMid(page, c.ux(7), y-1.2, lines[1], face, c.colors.text)
		}
	}
}

func (c *ChartRenderer) drawFooter(page *canvas.Canvas) {
	text := "DISCLAIMER: This AI assessment is for informational purposes only. Always consult healthcare professionals."
	face := c.fonts.Face(c.pt(8), false)
	width := page.TextWidth(face, text)
	height := faceHeight(face)
	pad := 16

	cx := c.ux(50)
	top := c.uy(3) - height/2
	page.FillRect(cx-width/2-pad, top-pad, width+2*pad, height+2*pad, c.colors.light)
	page.StrokeRect(cx-width/2-pad, top-pad, width+2*pad, height+2*pad, c.lw(1), c.colors.danger)
	page.TextCentered(cx, top, text, face, c.colors.danger)
}

func (c *ChartRenderer) sectionTitle(page *canvas.Canvas, x int, boxTop float64, title string) {
	face := c.fonts.Face(c.pt(12), true)
	page.Text(x, c.uy(boxTop)-faceHeight(face)-6, title, face, c.colors.primary)
}

// textMid draws s vertically centered on grid row y.
func (c *ChartRenderer) textMid(page *canvas.Canvas, x int, y float64, s string, face font.Face, col color.Color) {
	page.Text(x, c.uy(y)-faceHeight(face)/2, s, face, col)
}

// textMidRight draws s right-aligned to x, vertically centered on grid row y.
func (c *ChartRenderer) textMidRight(page *canvas.Canvas, x int, y float64, s string, face font.Face, col color.Color) {
	page.TextRight(x, c.uy(y)-faceHeight(face)/2, s, face, col)
}

func (c *ChartRenderer) tierColor(tier risk.Tier) color.RGBA {
	switch {
	case tier == risk.TierCritical || tier == risk.TierHigh:
		return c.colors.danger
	case tier == risk.TierModerate || tier == risk.TierLowModerate:
		return c.colors.warning
	default:
		return c.colors.success
	}
}

// Grid conversions. A unit is 1/100 of the width horizontally and 1/150 of
// the height vertically, with y measured up from the bottom edge.

func (c *ChartRenderer) ux(u float64) int {
	return int(math.Round(u / 100 * float64(c.layout.Width)))
}

func (c *ChartRenderer) uy(u float64) int {
	return int(math.Round((150 - u) / 150 * float64(c.layout.Height)))
}

func (c *ChartRenderer) uw(u float64) int {
	return int(math.Round(u / 100 * float64(c.layout.Width)))
}

func (c *ChartRenderer) uh(u float64) int {
	return int(math.Round(u / 150 * float64(c.layout.Height)))
}

// pt converts a point size to pixels against an A4 sheet width.
func (c *ChartRenderer) pt(points float64) float64 {
	return points * float64(c.layout.Width) / 595
}

func (c *ChartRenderer) lw(points float64) int {
	width := int(math.Round(points * float64(c.layout.Width) / 595))
	if width < 1 {
		return 1
	}
	return width
}

func faceHeight(face font.Face) int {
	metrics := face.Metrics()
	return (metrics.Ascent + metrics.Descent).Ceil()
}
