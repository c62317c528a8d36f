// Package fonts resolves the TrueType fonts used by report rendering.
//
// Candidate font files are probed in order and the first one that loads
// wins. When no candidate resolves, the embedded Go fonts are used, so a
// usable face is always available.
package fonts

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/cardioinsight/riskservice/config"
)

// Platform font files probed after any configured paths.
var (
	defaultRegularPaths = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/Library/Fonts/Arial.ttf",
		"C:/Windows/Fonts/arial.ttf",
		"C:/Windows/Fonts/calibri.ttf",
	}
	defaultBoldPaths = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/Library/Fonts/Arial Bold.ttf",
		"C:/Windows/Fonts/arialbd.ttf",
		"C:/Windows/Fonts/calibrib.ttf",
	}
)

type faceKey struct {
	size float64
	bold bool
}

// Library hands out cached font faces by pixel size and weight. It is safe
// for concurrent use.
type Library struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func NewLibrary(cfg *config.Config, logger *zap.SugaredLogger) *Library {
	regular := append(append([]string{}, cfg.FontPaths...), defaultRegularPaths...)
	bold := append(append([]string{}, cfg.FontBoldPaths...), defaultBoldPaths...)
	return &Library{
		regular: resolveFont(regular, goregular.TTF, logger),
		bold:    resolveFont(bold, gobold.TTF, logger),
		faces:   map[faceKey]font.Face{},
	}
}

func resolveFont(candidates []string, embedded []byte, logger *zap.SugaredLogger) *opentype.Font {
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debugw("skipping font candidate", "path", path, "error", err)
			continue
		}
		fnt, err := opentype.Parse(data)
		if err != nil {
			logger.Debugw("skipping font candidate", "path", path, "error", err)
			continue
		}
		logger.Debugw("loaded font", "path", path)
		return fnt
	}
	fnt, err := opentype.Parse(embedded)
	if err != nil {
		logger.Errorw("parsing embedded font", "error", err)
		return nil
	}
	return fnt
}

// Face returns a face rendering at the given pixel size. The fixed-size
// bitmap face is the last resort when no face can be constructed; it
// ignores the requested size.
func (l *Library) Face(size float64, bold bool) font.Face {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if face, ok := l.faces[key]; ok {
		return face
	}

	fnt := l.regular
	if bold {
		fnt = l.bold
	}
	face := newFace(fnt, size)
	l.faces[key] = face
	return face
}

func newFace(fnt *opentype.Font, size float64) font.Face {
	if fnt == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
