// Package cover renders default PNG covers for subjects without an uploaded
// image: the subject's theme color as background with its name on a panel.
package cover

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth  = 640
	imageHeight = 400

	panelMarginX     = 48
	panelHeight      = 96
	panelBorderRadius = 12.0
	accentRadius      = 72.0
)

var (
	panelColor     = color.RGBA{255, 255, 255, 235}
	panelTextColor = color.RGBA{40, 44, 52, 255}
	shadowColor    = color.RGBA{0, 0, 0, 30}
)

// Render produces the cover PNG. hexColor is the subject's theme color
// ("#RRGGBB"); an unparsable value falls back to a neutral slate.
func Render(name, hexColor string) ([]byte, error) {
	dc := createCanvas(parseHexColor(hexColor))

	drawAccents(dc)
	drawPanel(dc, name)

	return encodeImage(dc)
}

func createCanvas(bg color.RGBA) *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bg)
	dc.Clear()
	return dc
}

// drawAccents draws two translucent circles from the darker shade of the
// background so plain covers still read as designed, not broken.
func drawAccents(dc *gg.Context) {
	dc.SetRGBA(0, 0, 0, 0.08)
	dc.DrawCircle(imageWidth-accentRadius/2, accentRadius/2, accentRadius)
	dc.Fill()

	dc.SetRGBA(255, 255, 255, 0.10)
	dc.DrawCircle(accentRadius/2, imageHeight-accentRadius/2, accentRadius*1.4)
	dc.Fill()
}

func drawPanel(dc *gg.Context, name string) {
	panelWidth := float64(imageWidth - 2*panelMarginX)
	panelX := float64(panelMarginX)
	panelY := float64(imageHeight-panelHeight) / 2

	dc.SetColor(shadowColor)
	dc.DrawRoundedRectangle(panelX+3, panelY+3, panelWidth, panelHeight, panelBorderRadius)
	dc.Fill()

	dc.SetColor(panelColor)
	dc.DrawRoundedRectangle(panelX, panelY, panelWidth, panelHeight, panelBorderRadius)
	dc.Fill()

	// basicfont keeps the renderer dependency-free of bundled TTFs; covers
	// are placeholders, not typography.
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(panelTextColor)
	dc.DrawStringAnchored(truncateName(name), float64(imageWidth)/2, panelY+panelHeight/2, 0.5, 0.35)
}

func truncateName(name string) string {
	const maxLen = 64
	if len(name) > maxLen {
		return name[:maxLen-3] + "..."
	}
	return name
}

// parseHexColor parses "#RRGGBB"; anything else yields slate.
func parseHexColor(s string) color.RGBA {
	fallback := color.RGBA{71, 85, 105, 255}

	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode cover: %w", err)
	}
	return buf.Bytes(), nil
}
