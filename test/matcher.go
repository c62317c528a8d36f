package test

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/onsi/gomega/types"
)

// HavePNGDimensions succeeds when the actual value holds PNG bytes that
// decode to the given size.
func HavePNGDimensions(width, height int) types.GomegaMatcher {
	return &pngDimensionsMatcher{width: width, height: height}
}

type pngDimensionsMatcher struct {
	width, height             int
	actualWidth, actualHeight int
}

func (m *pngDimensionsMatcher) Match(actual interface{}) (bool, error) {
	data, ok := actual.([]byte)
	if !ok {
		return false, fmt.Errorf("HavePNGDimensions expects []byte, got %T", actual)
	}
	config, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("decoding png: %w", err)
	}
	m.actualWidth = config.Width
	m.actualHeight = config.Height
	return config.Width == m.width && config.Height == m.height, nil
}

func (m *pngDimensionsMatcher) FailureMessage(interface{}) string {
	return fmt.Sprintf("expected PNG dimensions %dx%d, got %dx%d", m.width, m.height, m.actualWidth, m.actualHeight)
}

func (m *pngDimensionsMatcher) NegatedFailureMessage(interface{}) string {
	return fmt.Sprintf("expected PNG dimensions to not be %dx%d", m.width, m.height)
}
