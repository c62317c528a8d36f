package report_test

import (
	"image"
	"image/color"
	"image/draw"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardioinsight/riskservice/charts"
	"github.com/cardioinsight/riskservice/report"
	"github.com/cardioinsight/riskservice/test"
)

var _ = Describe("ChartRenderer", func() {
	var renderer *report.ChartRenderer

	BeforeEach(func() {
		renderer = report.NewChartRenderer(report.DefaultLayout(), newLibrary())
	})

	It("renders the summary page without chart images", func() {
		Expect(renderMust(renderer, testRequest())).To(test.HavePNGDimensions(2480, 3508))
	})

	It("embeds a provided chart image into its analysis box", func() {
		teal := color.RGBA{R: 0x00, G: 0x80, B: 0x80, A: 0xff}
		chart := image.NewRGBA(image.Rect(0, 0, 400, 300))
		draw.Draw(chart, chart.Bounds(), image.NewUniform(teal), image.Point{}, draw.Src)

		request := testRequest()
		blank := decodePNG(renderMust(renderer, request))
		Expect(containsColor(blank, teal)).To(BeFalse())

		request.RadarChart = chart
		embedded := decodePNG(renderMust(renderer, request))
		Expect(containsColor(embedded, teal)).To(BeTrue())
	})

	It("renders real analysis charts", func() {
		request := testRequest()
		generator := charts.NewGenerator(newLibrary())
		request.RadarChart = generator.Radar(request.Record)

		Expect(renderMust(renderer, request)).ToNot(Equal(renderMust(renderer, testRequest())))
	})

	It("caps the guidance list", func() {
		request := testRequest()
		request.Assessment.Recommendations = guidance(8)
		full := renderMust(renderer, request)

		request.Assessment.Recommendations = request.Assessment.Recommendations[:5]
		Expect(renderMust(renderer, request)).To(Equal(full))

		request.Assessment.Recommendations = request.Assessment.Recommendations[:3]
		Expect(renderMust(renderer, request)).ToNot(Equal(full))
	})

	It("scales to the layout dimensions", func() {
		layout := report.DefaultLayout()
		layout.Width = 1240
		layout.Height = 1754
		small := report.NewChartRenderer(layout, newLibrary())
		Expect(renderMust(small, testRequest())).To(test.HavePNGDimensions(1240, 1754))
	})
})
