// Package export writes rendered frames and graph steps as SVG and DOT.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/viz"
)

// FrameToSVG draws f on a width x height cell canvas and converts it.
func FrameToSVG(f playback.Frame, width, height int, th viz.Theme, scale float64) string {
	c := viz.NewCanvas(width, height)
	viz.DrawFrame(c, f)
	return CanvasToSVG(c, th, scale)
}

// CanvasToSVG converts a braille canvas to SVG, one circle per dot and one
// group per tag colored from th. Text cells become text elements.
func CanvasToSVG(canvas *viz.Canvas, th viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, th.Background)

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	groups := make([]strings.Builder, viz.NumTags)
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			g := &groups[canvas.Tags[row][col]]
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			if r < 0x2800 || r > 0x28ff {
				if r != ' ' {
					fmt.Fprintf(g, `<text x="%.1f" y="%.1f" font-size="%.1f">%s</text>
`, baseX, baseY+scale*3.5, scale*3.5, escape(string(r)))
				}
				continue
			}

			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(g, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius)
					}
				}
			}
		}
	}

	for tag := range groups {
		if groups[tag].Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, "<g fill=\"%s\" font-family=\"monospace\">\n", th.TagColor(viz.Tag(tag)))
		sb.WriteString(groups[tag].String())
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline, one point per step.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2
	step := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
