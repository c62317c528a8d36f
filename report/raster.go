package report

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"

	"github.com/cardioinsight/riskservice/canvas"
	"github.com/cardioinsight/riskservice/fonts"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/risk"
)

// Heights of the tinted title strips inside the bands.
const (
	stripHeight       = 60
	footerStripHeight = 50
)

// RasterRenderer draws the primary report page: six bands stacked top to
// bottom on a print-resolution canvas. Band origins, column anchors and
// repeated row steps come from the layout, so a preset rescales the page
// without touching the drawing code.
type RasterRenderer struct {
	layout Layout
	colors colors
	fonts  *fonts.Library
}

var _ Renderer = &RasterRenderer{}

func NewRasterRenderer(layout Layout, library *fonts.Library) (*RasterRenderer, error) {
	parsed, err := layout.Palette.parse()
	if err != nil {
		return nil, fmt.Errorf("report palette: %w", err)
	}
	return &RasterRenderer{
		layout: layout,
		colors: parsed,
		fonts:  library,
	}, nil
}

func (r *RasterRenderer) Name() string {
	return RendererRaster
}

func (r *RasterRenderer) Render(request Request) ([]byte, error) {
	page := canvas.New(r.layout.Width, r.layout.Height, r.colors.white)
	r.drawHeader(page, request)
	r.drawPatient(page, request)
	r.drawRisk(page, request)
	r.drawRecommendations(page, request)
	r.drawAnalytics(page, request)
	r.drawFooter(page, request)
	return page.EncodePNG()
}

func (r *RasterRenderer) drawHeader(page *canvas.Canvas, request Request) {
	l := r.layout
	page.FillRect(0, 0, l.Width, l.Bands.Header, r.colors.primary)
	page.Text(l.Margin, 40, "CardioInsight AI", r.fonts.Face(l.Fonts.Title, true), r.colors.white)
	page.Text(l.Margin, 100, "Advanced Cardiovascular Risk Assessment", r.fonts.Face(l.Fonts.Body, false), r.colors.white)
	generated := "Generated: " + request.GeneratedAt.Format("January 02, 2006 at 03:04 PM")
	page.TextRight(l.Width-l.Margin, 140, generated, r.fonts.Face(l.Fonts.Small, false), r.colors.white)
}

func (r *RasterRenderer) drawPatient(page *canvas.Canvas, request Request) {
	l := r.layout
	y := l.PatientY()
	width := l.Width - 2*l.Margin
	page.FillRect(l.Margin, y, width, l.Bands.Patient, r.colors.white)
	page.StrokeRect(l.Margin, y, width, l.Bands.Patient, 2, r.colors.border)
	page.FillRect(l.Margin, y, width, stripHeight, r.colors.light)
	page.Text(l.Columns.Content, y+20, "PATIENT INFORMATION", r.fonts.Face(l.Fonts.Heading, true), r.colors.primary)

	details := request.Record.Details()
	left := append([]patients.Detail{
		{Label: "Patient ID:", Value: PatientID(request.Record, request.GeneratedAt)},
	}, details[:5]...)
	right := details[5:]

	label := r.fonts.Face(l.Fonts.Small, false)
	value := r.fonts.Face(l.Fonts.Body, false)
	r.drawDetailColumn(page, l.Columns.Content, y+100, left, label, value)
	r.drawDetailColumn(page, l.Columns.Detail, y+100, right, label, value)
}

func (r *RasterRenderer) drawDetailColumn(page *canvas.Canvas, x, y int, details []patients.Detail, label, value font.Face) {
	for _, detail := range details {
		page.Text(x, y, detail.Label, label, r.colors.textSecondary)
		page.Text(x, y+25, detail.Value, value, r.colors.textPrimary)
		y += r.layout.Rows.Detail
	}
}

func (r *RasterRenderer) drawRisk(page *canvas.Canvas, request Request) {
	l := r.layout
	y := l.RiskY()
	width := l.Width - 2*l.Margin
	tierColor := r.tierColor(request.Assessment.Tier)

	page.FillRect(l.Margin, y, width, l.Bands.Risk, r.colors.white)
	page.StrokeRect(l.Margin, y, width, l.Bands.Risk, 4, tierColor)
	page.FillRect(l.Margin, y, width, stripHeight, tierColor)
	page.Text(l.Columns.Content, y+20, "RISK ASSESSMENT", r.fonts.Face(l.Fonts.Heading, true), r.colors.white)

	small := r.fonts.Face(l.Fonts.Small, false)
	heading := r.fonts.Face(l.Fonts.Heading, true)
	page.Text(l.Columns.Content, y+100, "Risk Classification:", small, r.colors.textSecondary)
	page.Text(l.Columns.Content, y+130, request.Assessment.Tier.String(), heading, tierColor)
	page.Text(l.Columns.Content, y+190, "Probability Score:", small, r.colors.textSecondary)
	page.Text(l.Columns.Content, y+220, fmt.Sprintf("%.1f%%", request.Assessment.Probability*100), heading, r.colors.textPrimary)

	r.drawGauge(page, l.Columns.Metrics, y+120, request.Assessment.Probability)
}

// drawGauge paints the fixed four-segment probability scale with a needle at
// the patient's probability. The segment cut points are display constants,
// independent of the grading policy.
func (r *RasterRenderer) drawGauge(page *canvas.Canvas, x, y int, probability float64) {
	l := r.layout
	page.FillRect(x, y, l.Gauge.Width, l.Gauge.Height, r.colors.border)

	segments := []struct {
		start, end float64
		col        color.RGBA
	}{
		{0, 0.2, r.colors.success},
		{0.2, 0.4, r.colors.warning},
		{0.4, 0.75, r.colors.danger},
		{0.75, 1.0, r.colors.critical},
	}
	for _, segment := range segments {
		segX := x + int(float64(l.Gauge.Width)*segment.start)
		segWidth := int(float64(l.Gauge.Width) * (segment.end - segment.start))
		page.FillRect(segX, y, segWidth, l.Gauge.Height, segment.col)
	}

	needleX := x + int(float64(l.Gauge.Width)*probability)
	page.FillPolygon([]image.Point{
		{X: needleX - 10, Y: y - 20},
		{X: needleX + 10, Y: y - 20},
		{X: needleX, Y: y},
	}, r.colors.dark)
}

func (r *RasterRenderer) drawRecommendations(page *canvas.Canvas, request Request) {
	l := r.layout
	y := l.RecommendationsY()
	width := l.Width - 2*l.Margin
	page.FillRect(l.Margin, y, width, l.Bands.Recommendations, r.colors.white)
	page.StrokeRect(l.Margin, y, width, l.Bands.Recommendations, 2, r.colors.border)
	page.FillRect(l.Margin, y, width, stripHeight, r.colors.primary)
	page.Text(l.Columns.Content, y+20, "CLINICAL RECOMMENDATIONS", r.fonts.Face(l.Fonts.Heading, true), r.colors.white)

	tiny := r.fonts.Face(l.Fonts.Tiny, false)
	small := r.fonts.Face(l.Fonts.Small, false)
	itemY := y + 100
	for _, recommendation := range request.Assessment.Recommendations {
		if itemY+50 > y+l.Bands.Recommendations-20 {
			break
		}
		badgeColor := r.priorityColor(recommendation.Priority)
		badgeWidth := len(recommendation.Priority)*l.Badge.CharWidth + l.Badge.Pad
		page.FillRect(l.Columns.Content, itemY, badgeWidth, l.Badge.Height, badgeColor)
		page.Text(l.Columns.Content+10, itemY+5, string(recommendation.Priority), tiny, r.colors.white)

		lines := SplitRecommendation(recommendation.Text)
		textX := l.Columns.Content + badgeWidth + 20
		page.Text(textX, itemY+5, "• "+lines[0], small, r.colors.textPrimary)
		if len(lines) > 1 {
			page.Text(textX, itemY+30, lines[1], small, r.colors.textPrimary)
		}
		itemY += l.Rows.Recommendation
	}
}

func (r *RasterRenderer) drawAnalytics(page *canvas.Canvas, request Request) {
	l := r.layout
	y := l.AnalyticsY()
	width := l.Width - 2*l.Margin
	page.FillRect(l.Margin, y, width, l.Bands.Analytics, r.colors.white)
	page.StrokeRect(l.Margin, y, width, l.Bands.Analytics, 2, r.colors.border)
	page.FillRect(l.Margin, y, width, stripHeight, r.colors.secondary)
	page.Text(l.Columns.Content, y+20, "DIAGNOSTIC ANALYTICS", r.fonts.Face(l.Fonts.Heading, true), r.colors.white)

	subheading := r.fonts.Face(l.Fonts.Subheading, true)
	small := r.fonts.Face(l.Fonts.Small, false)
	body := r.fonts.Face(l.Fonts.Body, false)

	page.Text(l.Columns.Content, y+100, "Risk Factor Analysis", subheading, r.colors.primary)
	factorY := y + 140
	for _, factor := range request.Assessment.Factors {
		if factorY+30 > y+l.Bands.Analytics-20 {
			break
		}
		page.Text(l.Columns.Content, factorY, factor.Name, small, r.colors.textSecondary)
		page.FillRect(l.Bar.X, factorY+5, l.Bar.Width, l.Bar.Height, r.colors.light)
		page.StrokeRect(l.Bar.X, factorY+5, l.Bar.Width, l.Bar.Height, 1, r.colors.border)
		fillWidth := int(float64(l.Bar.Width) * factor.Value)
		page.FillRect(l.Bar.X, factorY+5, fillWidth, l.Bar.Height, r.severityColor(factor.Severity))
		page.Text(l.Bar.X+l.Bar.Width+20, factorY, fmt.Sprintf("%.1f%%", factor.Value*100), small, r.colors.textPrimary)
		factorY += l.Rows.Factor
	}

	page.Text(l.Columns.Metrics, y+100, "Model Performance", subheading, r.colors.primary)
	metrics := request.Metadata.Metrics
	rows := []struct {
		label string
		value string
	}{
		{"Accuracy", fmt.Sprintf("%.1f%%", metrics.Accuracy*100)},
		{"Sensitivity", fmt.Sprintf("%.1f%%", metrics.Sensitivity*100)},
		{"Specificity", fmt.Sprintf("%.1f%%", metrics.Specificity*100)},
		{"AUC-ROC", fmt.Sprintf("%.3f", metrics.AUC)},
	}
	metricY := y + 140
	for _, row := range rows {
		page.Text(l.Columns.Metrics, metricY, row.label, small, r.colors.textSecondary)
		page.Text(l.Columns.Metrics, metricY+25, row.value, body, r.colors.textPrimary)
		metricY += l.Rows.Metric
	}
}

func (r *RasterRenderer) drawFooter(page *canvas.Canvas, request Request) {
	l := r.layout
	y := l.FooterY()
	width := l.Width - 2*l.Margin
	page.FillRect(l.Margin, y, width, l.Bands.Footer, r.colors.light)
	page.StrokeRect(l.Margin, y, width, l.Bands.Footer, 3, r.colors.danger)
	page.FillRect(l.Margin, y, width, footerStripHeight, r.colors.danger)
	page.Text(l.Columns.Content, y+15, "IMPORTANT MEDICAL DISCLAIMER", r.fonts.Face(l.Fonts.Subheading, true), r.colors.white)

	small := r.fonts.Face(l.Fonts.Small, false)
	lines := []string{
		"This AI-generated report is for clinical decision support only and must be interpreted by qualified healthcare professionals.",
		"Results should not replace comprehensive clinical evaluation, complete medical history, or physical examination.",
		"Always consult with a board-certified cardiologist for definitive diagnosis and treatment planning.",
		fmt.Sprintf("Report ID: %s | Algorithm: %s v%s", ReportID(request.GeneratedAt), request.Metadata.Algorithm, request.Metadata.Version),
	}
	lineY := y + 70
	for _, line := range lines {
		page.Text(l.Columns.Content, lineY, line, small, r.colors.textPrimary)
		lineY += l.Rows.Disclaimer
	}
}

func (r *RasterRenderer) tierColor(tier risk.Tier) color.RGBA {
	switch {
	case tier == risk.TierCritical || tier == risk.TierHigh:
		return r.colors.danger
	case tier == risk.TierModerate || tier == risk.TierLowModerate:
		return r.colors.warning
	default:
		return r.colors.success
	}
}

func (r *RasterRenderer) priorityColor(priority risk.Priority) color.RGBA {
	switch priority {
	case risk.PriorityUrgent:
		return r.colors.danger
	case risk.PriorityHigh:
		return r.colors.warning
	case risk.PriorityModerate:
		return r.colors.secondary
	case risk.PriorityRoutine:
		return r.colors.success
	default:
		return r.colors.textSecondary
	}
}

func (r *RasterRenderer) severityColor(severity risk.Severity) color.RGBA {
	switch severity {
	case risk.SeverityHigh:
		return r.colors.danger
	case risk.SeverityElevated:
		return r.colors.warning
	default:
		return r.colors.success
	}
}

// SplitRecommendation breaks long guidance into at most two lines, the first
// twelve words and then the remainder. Short text stays on one line.
func SplitRecommendation(text string) []string {
	if len(text) <= 80 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) <= 12 {
		return []string{text}
	}
	return []string{
		strings.Join(words[:12], " "),
		strings.Join(words[12:], " "),
	}
}
