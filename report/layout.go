package report

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/TwiN/deepmerge"
	"gopkg.in/yaml.v3"

	"github.com/cardioinsight/riskservice/config"
)

// Layout gathers every dimension and color the renderers place on the page.
// The defaults reproduce an A4 page at 300 DPI. Band origins are derived from
// the band heights and the gap, so a resolution change is one preset edit.
type Layout struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Margin int `yaml:"margin"`
	Gap    int `yaml:"gap"`

	Fonts   FontSizes `yaml:"fonts"`
	Bands   Bands     `yaml:"bands"`
	Columns Columns   `yaml:"columns"`
	Gauge   Gauge     `yaml:"gauge"`
	Badge   Badge     `yaml:"badge"`
	Bar     Bar       `yaml:"bar"`
	Rows    Rows      `yaml:"rows"`
	Palette Palette   `yaml:"palette"`
}

// FontSizes are point sizes for the six text roles. Title, heading and
// subheading render bold, the rest regular.
type FontSizes struct {
	Title      float64 `yaml:"title"`
	Heading    float64 `yaml:"heading"`
	Subheading float64 `yaml:"subheading"`
	Body       float64 `yaml:"body"`
	Small      float64 `yaml:"small"`
	Tiny       float64 `yaml:"tiny"`
}

// Bands are the heights of the six page bands, top to bottom.
type Bands struct {
	Header          int `yaml:"header"`
	Patient         int `yaml:"patient"`
	Risk            int `yaml:"risk"`
	Recommendations int `yaml:"recommendations"`
	Analytics       int `yaml:"analytics"`
	Footer          int `yaml:"footer"`
}

// Columns are the x anchors for band content: the left text inset, the
// patient detail right column and the gauge/model metrics column.
type Columns struct {
	Content int `yaml:"content"`
	Detail  int `yaml:"detail"`
	Metrics int `yaml:"metrics"`
}

// Gauge is the probability gauge geometry.
type Gauge struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Badge is the priority badge geometry. Width scales with the label length.
type Badge struct {
	Height    int `yaml:"height"`
	CharWidth int `yaml:"char_width"`
	Pad       int `yaml:"pad"`
}

// Bar is the risk-factor progress bar geometry.
type Bar struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Rows are the vertical steps between repeated items within a band.
type Rows struct {
	Detail         int `yaml:"detail"`
	Recommendation int `yaml:"recommendation"`
	Factor         int `yaml:"factor"`
	Metric         int `yaml:"metric"`
	Disclaimer     int `yaml:"disclaimer"`
}

// Palette is the report color scheme as #rrggbb strings. It is validated
// when the renderer is constructed, not at draw time.
type Palette struct {
	Primary       string `yaml:"primary"`
	Secondary     string `yaml:"secondary"`
	Success       string `yaml:"success"`
	Warning       string `yaml:"warning"`
	Danger        string `yaml:"danger"`
	Critical      string `yaml:"critical"`
	Dark          string `yaml:"dark"`
	Light         string `yaml:"light"`
	White         string `yaml:"white"`
	Border        string `yaml:"border"`
	TextPrimary   string `yaml:"text_primary"`
	TextSecondary string `yaml:"text_secondary"`
}

func DefaultLayout() Layout {
	return Layout{
		Width:  2480,
		Height: 3508,
		Margin: 60,
		Gap:    40,
		Fonts: FontSizes{
			Title:      48,
			Heading:    36,
			Subheading: 28,
			Body:       24,
			Small:      20,
			Tiny:       16,
		},
		Bands: Bands{
			Header:          200,
			Patient:         400,
			Risk:            300,
			Recommendations: 500,
			Analytics:       350,
			Footer:          200,
		},
		Columns: Columns{
			Content: 80,
			Detail:  1280,
			Metrics: 1340,
		},
		Gauge: Gauge{
			Width:  400,
			Height: 30,
		},
		Badge: Badge{
			Height:    30,
			CharWidth: 12,
			Pad:       20,
		},
		Bar: Bar{
			X:      350,
			Width:  300,
			Height: 20,
		},
		Rows: Rows{
			Detail:         60,
			Recommendation: 55,
			Factor:         45,
			Metric:         60,
			Disclaimer:     30,
		},
		Palette: Palette{
			Primary:       "#1e3a8a",
			Secondary:     "#3b82f6",
			Success:       "#10b981",
			Warning:       "#f59e0b",
			Danger:        "#ef4444",
			Critical:      "#8b0000",
			Dark:          "#1f2937",
			Light:         "#f8fafc",
			White:         "#ffffff",
			Border:        "#e2e8f0",
			TextPrimary:   "#0f172a",
			TextSecondary: "#475569",
		},
	}
}

// LoadLayout resolves the effective layout: the built-in defaults, overlaid
// with the preset file named by the configuration when one is set. Presets
// only list the values they change.
func LoadLayout(cfg *config.Config) (Layout, error) {
	layout := DefaultLayout()
	if cfg.LayoutPreset == "" {
		return layout, nil
	}

	defaults, err := yaml.Marshal(layout)
	if err != nil {
		return Layout{}, fmt.Errorf("encoding default layout: %w", err)
	}
	preset, err := os.ReadFile(cfg.LayoutPreset)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout preset: %w", err)
	}
	merged, err := deepmerge.YAML(defaults, preset, deepmerge.Config{
		PreventMultipleDefinitionsOfKeysWithPrimitiveValue: false},
	)
	if err != nil {
		return Layout{}, fmt.Errorf("merging layout preset %s: %w", cfg.LayoutPreset, err)
	}
	if err := yaml.Unmarshal(merged, &layout); err != nil {
		return Layout{}, fmt.Errorf("decoding layout preset %s: %w", cfg.LayoutPreset, err)
	}
	return layout, nil
}

// Band origins, top to bottom. The header starts at zero and every later
// band follows the previous one plus the gap.

func (l Layout) PatientY() int {
	return l.Bands.Header + l.Gap
}

func (l Layout) RiskY() int {
	return l.PatientY() + l.Bands.Patient + l.Gap
}

func (l Layout) RecommendationsY() int {
	return l.RiskY() + l.Bands.Risk + l.Gap
}

func (l Layout) AnalyticsY() int {
	return l.RecommendationsY() + l.Bands.Recommendations + l.Gap
}

func (l Layout) FooterY() int {
	return l.AnalyticsY() + l.Bands.Analytics + l.Gap
}

type colors struct {
	primary       color.RGBA
	secondary     color.RGBA
	success       color.RGBA
	warning       color.RGBA
	danger        color.RGBA
	critical      color.RGBA
	dark          color.RGBA
	light         color.RGBA
	white         color.RGBA
	border        color.RGBA
	textPrimary   color.RGBA
	textSecondary color.RGBA
}

func (p Palette) parse() (colors, error) {
	var c colors
	entries := []struct {
		dst *color.RGBA
		hex string
	}{
		{&c.primary, p.Primary},
		{&c.secondary, p.Secondary},
		{&c.success, p.Success},
		{&c.warning, p.Warning},
		{&c.danger, p.Danger},
		{&c.critical, p.Critical},
		{&c.dark, p.Dark},
		{&c.light, p.Light},
		{&c.white, p.White},
		{&c.border, p.Border},
		{&c.textPrimary, p.TextPrimary},
		{&c.textSecondary, p.TextSecondary},
	}
	for _, entry := range entries {
		parsed, err := ParseHexColor(entry.hex)
		if err != nil {
			return colors{}, err
		}
		*entry.dst = parsed
	}
	return c, nil
}

// ParseHexColor decodes a #rrggbb palette entry.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
