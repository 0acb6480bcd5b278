package viz

import (
	"math"

	"github.com/san-kum/submoonsim/internal/dynamo"
)

// View is the camera orientation relative to the orbital plane.
type View int

const (
	ViewTopDown View = iota
	ViewInclined
)

func (v View) String() string {
	if v == ViewInclined {
		return "inclined"
	}
	return "top-down"
}

const defaultTilt = math.Pi / 3

// Camera maps points of the X–Z orbital plane onto the canvas. Extent is
// the world distance from Center to the canvas edge at zoom 1.
type Camera struct {
	View   View
	Tilt   float64
	Zoom   float64
	Center dynamo.Vec3
	Extent float64
}

func NewCamera() *Camera {
	return &Camera{Tilt: defaultTilt, Zoom: 1.0, Extent: 1.0}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) ToggleView() {
	if c.View == ViewTopDown {
		c.View = ViewInclined
	} else {
		c.View = ViewTopDown
	}
}

// Project converts a world point to dot coordinates on a sw×sh canvas.
// The bool reports whether the point lands on the canvas.
func (c *Camera) Project(p dynamo.Vec3, sw, sh int) (int, int, bool) {
	rel := p.Sub(c.Center)
	depth := rel.Z
	if c.View == ViewInclined {
		depth = rel.Z*math.Cos(c.Tilt) - rel.Y*math.Sin(c.Tilt)
	}

	extent := c.Extent
	if !(extent > 0) || math.IsInf(extent, 0) {
		extent = 1
	}
	minDim := float64(sw)
	if float64(sh) < minDim {
		minDim = float64(sh)
	}
	scale := (minDim / 2) * c.Zoom / extent

	sx := sw/2 + int(math.Round(rel.X*scale))
	sy := sh/2 - int(math.Round(depth*scale))
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
