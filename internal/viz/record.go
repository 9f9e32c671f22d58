package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/particlelife/internal/life"
)

// Recorder rasterizes snapshots into GIF frames, one pixel block per
// particle in its type color.
type Recorder struct {
	width, height int
	scaleX        float64
	scaleY        float64
	palette       color.Palette
	frames        []*image.Paletted
	maxFrames     int
}

// NewRecorder records a domain of worldW x worldH into frames of the given
// pixel width; height keeps the domain aspect ratio.
func NewRecorder(worldW, worldH float64, width int, th Theme) *Recorder {
	if width <= 0 {
		width = 400
	}
	height := max(1, int(float64(width)*worldH/worldW))

	palette := color.Palette{color.RGBA{0x0a, 0x0a, 0x12, 0xff}}
	for _, c := range th.Types {
		rgb, err := colorful.Hex(string(c))
		if err != nil {
			rgb = colorful.Color{R: 1, G: 1, B: 1}
		}
		r, g, b := rgb.RGB255()
		palette = append(palette, color.RGBA{r, g, b, 0xff})
	}

	return &Recorder{
		width:     width,
		height:    height,
		scaleX:    float64(width) / worldW,
		scaleY:    float64(height) / worldH,
		palette:   palette,
		maxFrames: 900,
	}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture appends a frame. Frames beyond the cap are dropped.
func (r *Recorder) Capture(particles []life.ParticleState) {
	if len(r.frames) >= r.maxFrames {
		return
	}
	img := image.NewPaletted(image.Rect(0, 0, r.width, r.height), r.palette)
	types := len(r.palette) - 1
	for _, p := range particles {
		idx := uint8(1 + p.Type%types)
		x := int(p.X * r.scaleX)
		y := int(p.Y * r.scaleY)
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				if x+dx < r.width && y+dy < r.height && x+dx >= 0 && y+dy >= 0 {
					img.SetColorIndex(x+dx, y+dy, idx)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save encodes all captured frames to path.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
