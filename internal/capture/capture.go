// Package capture records playback frames and encodes them as an animated
// GIF.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/viz"
)

var ErrNoFrames = errors.New("capture: no frames recorded")

const (
	charW = 8
	charH = 16
)

type Options struct {
	// Width and Height are the canvas size in terminal cells.
	Width, Height int
	// Delay is the time per frame in hundredths of a second.
	Delay int
	Loop  bool
	Theme viz.Theme
}

// Session buffers rasterized frames for one run. It is safe to attach to a
// running engine.
type Session struct {
	mu      sync.Mutex
	opts    Options
	canvas  *viz.Canvas
	palette color.Palette

	frames []*image.Paletted
	last   frameKey
	seen   bool

	detach func()
}

type frameKey struct {
	index, total int
	algorithm    string
}

func NewSession(opts Options) *Session {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 20
	}
	if opts.Delay <= 0 {
		opts.Delay = 20
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.CurrentTheme
	}
	return &Session{
		opts:    opts,
		canvas:  viz.NewCanvas(opts.Width, opts.Height),
		palette: palette(opts.Theme),
	}
}

// palette holds the background followed by one color per tag.
func palette(th viz.Theme) color.Palette {
	p := color.Palette{rgb(th.Background)}
	for tag := viz.Tag(0); tag < viz.NumTags; tag++ {
		p = append(p, rgb(th.TagColor(tag)))
	}
	return p
}

func rgb(c lipgloss.Color) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(string(c), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return color.RGBA{r, g, b, 0xff}
}

// Attach subscribes the session to e. Close detaches it.
func (s *Session) Attach(e *playback.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detach != nil {
		s.detach()
	}
	s.detach = e.Observe(s.Capture)
}

// Capture records f unless it shows the same step as the previous frame.
func (s *Session) Capture(f playback.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := frameKey{index: f.Index, total: f.Total, algorithm: f.Algorithm}
	if s.seen && key == s.last {
		return
	}
	s.last, s.seen = key, true

	viz.DrawFrame(s.canvas, f)
	s.frames = append(s.frames, s.rasterize())
}

func (s *Session) rasterize() *image.Paletted {
	c := s.canvas
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), s.palette)

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			idx := uint8(c.Tags[row][col]) + 1
			baseX, baseY := col*charW, row*charH

			if r == ' ' {
				continue
			}
			if r < 0x2800 || r > 0x28ff {
				fill(img, baseX+1, baseY+2, charW-2, charH-4, idx)
				continue
			}
			pattern := r - 0x2800
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBit(dx, dy) != 0 {
						fill(img, baseX+dx*dotW, baseY+dy*dotH, dotW, dotH, idx)
					}
				}
			}
		}
	}
	return img
}

func dotBit(dx, dy int) rune {
	if dy == 3 {
		return 0x40 << dx
	}
	return (1 << dy) << (dx * 3)
}

func fill(img *image.Paletted, x, y, w, h int, idx uint8) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			img.SetColorIndex(px, py, idx)
		}
	}
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Close detaches the session from its engine. Recorded frames are kept.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

func (s *Session) Encode(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	if !s.opts.Loop {
		anim.LoopCount = -1
	}
	for i, frame := range s.frames {
		anim.Image = append(anim.Image, frame)
		delay := s.opts.Delay
		if i == len(s.frames)-1 {
			// hold the final state
			delay *= 5
		}
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (s *Session) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Record plays e to its last step on clock, capturing every frame into s.
// The engine must have been built with clock as its scheduler.
func Record(ctx context.Context, e *playback.Engine, clock *playback.ManualClock, s *Session) error {
	if err := e.Prepare(); err != nil {
		return err
	}
	s.Attach(e)
	defer s.Close()

	e.Reset()
	if err := e.Play(); err != nil {
		return err
	}
	for e.Status() == playback.Running {
		if err := ctx.Err(); err != nil {
			e.Pause()
			return err
		}
		clock.Advance(e.Speed())
	}
	return nil
}
