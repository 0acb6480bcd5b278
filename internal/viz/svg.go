package viz

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/submoonsim/internal/dynamo"
)

const svgBackground = "#0a0a0a"

// SVG converts the canvas to SVG, one circle per braille dot, colored by ink.
func (c *Canvas) SVG(scale float64, theme Theme) string {
	width := float64(c.SubWidth()) * scale
	height := float64(c.SubHeight()) * scale
	dotRadius := scale * 0.4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern <= 0 {
				continue
			}
			fill := string(theme.color(c.Ink[row][col]))
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectorySVG draws the top-down paths of the three bodies around a star
// at the origin. The frame is square so circular orbits stay circular.
func TrajectorySVG(positions []dynamo.Positions, size int, theme Theme) string {
	if len(positions) < 2 || size <= 0 {
		return ""
	}

	extent := 0.0
	for _, p := range positions {
		for _, v := range []dynamo.Vec3{p.Planet, p.Moon, p.Submoon} {
			extent = math.Max(extent, math.Max(math.Abs(v.X), math.Abs(v.Z)))
		}
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1

	half := float64(size) / 2
	project := func(v dynamo.Vec3) (float64, float64) {
		return half + v.X/extent*half, half - v.Z/extent*half
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, size, size, size, size, svgBackground, half, half, float64(size)/80, theme.Star)

	paths := []struct {
		ink  Ink
		body func(dynamo.Positions) dynamo.Vec3
	}{
		{InkPlanet, func(p dynamo.Positions) dynamo.Vec3 { return p.Planet }},
		{InkMoon, func(p dynamo.Positions) dynamo.Vec3 { return p.Moon }},
		{InkSubmoon, func(p dynamo.Positions) dynamo.Vec3 { return p.Submoon }},
	}

	for _, path := range paths {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" d="M`, theme.color(path.ink))
		for i, p := range positions {
			x, y := project(path.body(p))
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeSVG(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
