package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
)

// Recorder captures canvas frames and writes them as an animated GIF.
type Recorder struct {
	frames  []*image.Paletted
	palette color.Palette
	active  bool
}

// NewRecorder builds a recorder whose palette is indexed by Ink.
func NewRecorder(theme Theme) *Recorder {
	return &Recorder{palette: theme.Palette()}
}

func (r *Recorder) Start() {
	r.active = true
	r.frames = make([]*image.Paletted, 0)
}

func (r *Recorder) Active() bool { return r.active }

func (r *Recorder) Frames() int { return len(r.frames) }

// Capture rasterizes the canvas, one 4×4 pixel block per braille dot.
func (r *Recorder) Capture(c *Canvas) {
	if !r.active {
		return
	}
	const charW, charH = 8, 16
	dotW, dotH := charW/2, charH/4
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), r.palette)

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern <= 0 {
				continue
			}
			ink := uint8(c.Ink[row][col])
			if int(ink) >= len(r.palette) {
				ink = uint8(len(r.palette) - 1)
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, ink)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save encodes the captured frames to path and stops recording.
func (r *Recorder) Save(path string) error {
	r.active = false
	frames := r.frames
	r.frames = nil
	if len(frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
