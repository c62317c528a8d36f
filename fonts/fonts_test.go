package fonts_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/cardioinsight/riskservice/config"
	"github.com/cardioinsight/riskservice/fonts"
)

var _ = Describe("Library", func() {
	var library *fonts.Library

	BeforeEach(func() {
		library = fonts.NewLibrary(config.New(), zap.NewNop().Sugar())
	})

	It("returns a usable face for every report font size", func() {
		for _, size := range []float64{16, 20, 24, 28, 36, 48} {
			face := library.Face(size, false)
			Expect(face).ToNot(BeNil())
			Expect(font.MeasureString(face, "CardioInsight").Ceil()).To(BeNumerically(">", 0))
		}
	})

	It("caches faces by size and weight", func() {
		first := library.Face(24, true)
		second := library.Face(24, true)
		Expect(first).To(BeIdenticalTo(second))
	})

	It("renders larger sizes wider", func() {
		small := library.Face(16, false)
		large := library.Face(48, false)
		Expect(font.MeasureString(large, "Risk").Ceil()).
			To(BeNumerically(">", font.MeasureString(small, "Risk").Ceil()))
	})

	It("skips missing font candidates", func() {
		cfg := config.New()
		cfg.FontPaths = []string{filepath.Join(GinkgoT().TempDir(), "missing.ttf")}
		library := fonts.NewLibrary(cfg, zap.NewNop().Sugar())
		face := library.Face(24, false)
		Expect(font.MeasureString(face, "Report").Ceil()).To(BeNumerically(">", 0))
	})

	It("skips font candidates that fail to parse", func() {
		path := filepath.Join(GinkgoT().TempDir(), "garbage.ttf")
		Expect(os.WriteFile(path, []byte("not a font"), 0600)).To(Succeed())

		cfg := config.New()
		cfg.FontPaths = []string{path}
		cfg.FontBoldPaths = []string{path}
		library := fonts.NewLibrary(cfg, zap.NewNop().Sugar())
		face := library.Face(20, true)
		Expect(font.MeasureString(face, "Report").Ceil()).To(BeNumerically(">", 0))
	})
})
