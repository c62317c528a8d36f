// Package canvas provides the raster drawing primitives report rendering
// is built on. Coordinates originate at the top left corner and text is
// anchored by its top left corner, so a band can lay out its content from
// its own offset without tracking baselines.
package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Canvas struct {
	img *image.RGBA
}

func New(width, height int, background color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &Canvas{img: img}
}

func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

func (c *Canvas) Image() image.Image {
	return c.img
}

func (c *Canvas) FillRect(x, y, width, height int, col color.Color) {
	draw.Draw(c.img, image.Rect(x, y, x+width, y+height), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) StrokeRect(x, y, width, height, thickness int, col color.Color) {
	c.FillRect(x, y, width, thickness, col)
	c.FillRect(x, y+height-thickness, width, thickness, col)
	c.FillRect(x, y, thickness, height, col)
	c.FillRect(x+width-thickness, y, thickness, height, col)
}

// FillPolygon fills the polygon spanned by points using even-odd scanline
// filling. Alpha in col blends over existing pixels.
func (c *Canvas) FillPolygon(points []image.Point, col color.Color) {
	if len(points) < 3 {
		return
	}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	src := image.NewUniform(col)
	for y := minY; y <= maxY; y++ {
		var crossings []float64
		for i := range points {
			p1 := points[i]
			p2 := points[(i+1)%len(points)]
			if p1.Y == p2.Y {
				continue
			}
			y1, y2 := float64(p1.Y), float64(p2.Y)
			fy := float64(y)
			if fy < math.Min(y1, y2) || fy >= math.Max(y1, y2) {
				continue
			}
			t := (fy - y1) / (y2 - y1)
			crossings = append(crossings, float64(p1.X)+t*float64(p2.X-p1.X))
		}
		sort.Float64s(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			x1 := int(math.Ceil(crossings[i]))
			x2 := int(math.Floor(crossings[i+1]))
			if x2 < x1 {
				continue
			}
			draw.Draw(c.img, image.Rect(x1, y, x2+1, y+1), src, image.Point{}, draw.Over)
		}
	}
}

// Line draws a straight line of the given thickness as a filled quad.
func (c *Canvas) Line(x1, y1, x2, y2, thickness int, col color.Color) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		c.FillRect(x1-thickness/2, y1-thickness/2, thickness, thickness, col)
		return
	}

	half := float64(thickness) / 2
	px := -dy / length * half
	py := dx / length * half
	c.FillPolygon([]image.Point{
		{X: int(math.Round(float64(x1) + px)), Y: int(math.Round(float64(y1) + py))},
		{X: int(math.Round(float64(x2) + px)), Y: int(math.Round(float64(y2) + py))},
		{X: int(math.Round(float64(x2) - px)), Y: int(math.Round(float64(y2) - py))},
		{X: int(math.Round(float64(x1) - px)), Y: int(math.Round(float64(y1) - py))},
	}, col)
}

// Text draws s with its top left corner at (x, y).
func (c *Canvas) Text(x, y int, s string, face font.Face, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}

// TextCentered draws s horizontally centered on cx with its top edge at y.
func (c *Canvas) TextCentered(cx, y int, s string, face font.Face, col color.Color) {
	c.Text(cx-c.TextWidth(face, s)/2, y, s, face, col)
}

// TextRight draws s with its top right corner at (x, y).
func (c *Canvas) TextRight(x, y int, s string, face font.Face, col color.Color) {
	c.Text(x-c.TextWidth(face, s), y, s, face, col)
}

func (c *Canvas) TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// DrawImage scales src into the destination rectangle.
func (c *Canvas) DrawImage(x, y, width, height int, src image.Image) {
	dst := image.Rect(x, y, x+width, y+height)
	draw.CatmullRom.Scale(c.img, dst, src, src.Bounds(), draw.Over, nil)
}

// EncodePNG serializes the canvas to a PNG byte buffer.
func (c *Canvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
