package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws every playback frame to a plain terminal, without
// taking over the keyboard.
type LiveRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	canvas *viz.Canvas
	theme  viz.Theme
	color  bool
}

func NewLiveRenderer(out io.Writer, width, height int, color bool) *LiveRenderer {
	return &LiveRenderer{
		out:    out,
		canvas: viz.NewCanvas(width, height),
		theme:  viz.CurrentTheme,
		color:  color,
	}
}

func (r *LiveRenderer) OnFrame(f playback.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	viz.DrawFrame(r.canvas, f)

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s\n", f.Algorithm)
	b.WriteString("  " + strings.Repeat("-", r.canvas.Width) + "\n")

	body := r.canvas.String()
	if r.color {
		body = r.canvas.Render(r.theme)
	}
	for _, row := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		b.WriteString("  " + row + "\n")
	}

	b.WriteString("  " + strings.Repeat("-", r.canvas.Width) + "\n")
	b.WriteString("  " + viz.StatusLine(f) + "\n")

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

// Play runs e from the first step to the last, redrawing each frame. It
// returns when playback goes idle or ctx is done.
func (r *LiveRenderer) Play(ctx context.Context, e *playback.Engine) error {
	done := make(chan struct{})
	var once sync.Once
	unsubscribe := e.Observe(func(f playback.Frame) {
		r.OnFrame(f)
		if f.Status == playback.Idle && f.Done() {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	r.Start()
	defer r.Stop()

	e.Reset()
	if err := e.Play(); err != nil {
		return err
	}
	if e.Status() != playback.Running {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		e.Pause()
		return ctx.Err()
	}
}
