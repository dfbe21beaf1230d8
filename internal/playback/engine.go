package playback

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/algoviz/internal/trace"
)

const DefaultSpeed = time.Second

type Option func(*Engine)

func WithClock(s Scheduler) Option {
	return func(e *Engine) { e.clock = s }
}

func WithSpeed(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.speed = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

type observer struct {
	id int
	fn func(Frame)
}

// Engine is a playback state machine over one trace. It is safe for
// concurrent use; observers are called without the engine lock held.
type Engine struct {
	mu     sync.Mutex
	clock  Scheduler
	logger *log.Logger

	src   Source
	input Input
	tr    *trace.Trace

	index  int
	status Status
	speed  time.Duration

	// token invalidates ticks that were cancelled after they started firing.
	token uint64
	timer Timer

	nextObserver int
	observers    []observer
}

func New(src Source, in Input, opts ...Option) *Engine {
	e := &Engine{
		clock:  RealClock{},
		logger: log.New(io.Discard),
		src:    src,
		input:  in.Clone(),
		speed:  DefaultSpeed,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Observe registers fn to receive a frame after every change. The returned
// func removes it.
func (e *Engine) Observe(fn func(Frame)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextObserver++
	id := e.nextObserver
	e.observers = append(e.observers, observer{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.observers = slices.DeleteFunc(e.observers, func(o observer) bool { return o.id == id })
	}
}

// Prepare generates the trace if none is installed.
func (e *Engine) Prepare() error {
	e.mu.Lock()
	changed := e.tr == nil
	if err := e.prepare(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.unlockNotify(changed)
	return nil
}

// Play starts playback. From idle it generates a trace when needed and
// rewinds when the last step is showing; from paused it resumes.
func (e *Engine) Play() error {
	e.mu.Lock()
	return e.play()
}

func (e *Engine) Pause() {
	e.mu.Lock()
	e.pause()
}

// Toggle pauses a running engine and plays otherwise.
func (e *Engine) Toggle() error {
	e.mu.Lock()
	if e.status == Running {
		e.pause()
		return nil
	}
	return e.play()
}

// play must be called with the lock held; it releases it.
func (e *Engine) play() error {
	switch e.status {
	case Running:
		e.mu.Unlock()
		return nil
	case Paused:
		e.status = Running
		e.schedule()
	case Idle:
		if err := e.prepare(); err != nil {
			e.mu.Unlock()
			return err
		}
		last := e.tr.Len() - 1
		if e.index >= last {
			e.index = 0
		}
		if e.index < last {
			e.status = Running
			e.schedule()
		}
	}
	e.unlockNotify(true)
	return nil
}

// pause must be called with the lock held; it releases it.
func (e *Engine) pause() {
	if e.status != Running {
		e.mu.Unlock()
		return
	}
	e.cancel()
	e.status = Paused
	e.unlockNotify(true)
}

func (e *Engine) StepForward() {
	e.mu.Lock()
	e.seek(e.index + 1)
}

func (e *Engine) StepBack() {
	e.mu.Lock()
	e.seek(e.index - 1)
}

// ScrubTo jumps to step i, clamped to the trace.
func (e *Engine) ScrubTo(i int) {
	e.mu.Lock()
	e.seek(i)
}

func (e *Engine) Home() {
	e.ScrubTo(0)
}

func (e *Engine) End() {
	e.mu.Lock()
	e.seek(e.tr.Len() - 1)
}

// Reset returns to the first step and idles. The trace is kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.cancel()
	e.index = 0
	e.status = Idle
	e.unlockNotify(true)
}

// Regenerate installs new original data. The current trace is discarded
// and a new one is generated on the next Play.
func (e *Engine) Regenerate(in Input) {
	e.mu.Lock()
	e.input = in.Clone()
	e.discard()
	e.unlockNotify(true)
}

// SetSource switches the algorithm and discards the current trace.
func (e *Engine) SetSource(src Source) {
	e.mu.Lock()
	e.src = src
	e.discard()
	e.unlockNotify(true)
}

// SetSpeed changes the delay between steps. A pending step is rescheduled
// with the new delay.
func (e *Engine) SetSpeed(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, d)
	}
	e.mu.Lock()
	e.speed = d
	if e.status == Running {
		e.schedule()
	}
	e.unlockNotify(false)
	return nil
}

// Close cancels any pending step.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancel()
	if e.status == Running {
		e.status = Paused
	}
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) Speed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

func (e *Engine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Trace returns the installed trace, nil before generation.
func (e *Engine) Trace() *trace.Trace {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tr
}

func (e *Engine) Input() Input {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input.Clone()
}

func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame()
}

func (e *Engine) prepare() error {
	if e.tr != nil {
		return nil
	}
	if e.src == nil {
		return ErrNoSource
	}
	tr, err := e.src.Generate(e.input.Clone())
	if err != nil {
		return err
	}
	e.tr = tr
	e.index = 0
	e.logger.Debug("generated trace", "algorithm", tr.Algorithm, "steps", tr.Len())
	return nil
}

func (e *Engine) discard() {
	e.cancel()
	e.tr = nil
	e.index = 0
	e.status = Idle
}

// seek must be called with the lock held; it releases it.
func (e *Engine) seek(i int) {
	if e.tr.Len() == 0 {
		e.mu.Unlock()
		return
	}
	last := e.tr.Len() - 1
	e.index = min(max(i, 0), last)

	if e.status == Running {
		if e.index == last {
			e.cancel()
			e.status = Idle
		} else {
			e.schedule()
		}
	}
	e.unlockNotify(true)
}

func (e *Engine) schedule() {
	e.cancel()
	token := e.token
	e.timer = e.clock.AfterFunc(e.speed, func() { e.tick(token) })
}

func (e *Engine) cancel() {
	e.token++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) tick(token uint64) {
	e.mu.Lock()
	if token != e.token || e.status != Running {
		e.mu.Unlock()
		return
	}
	e.timer = nil

	last := e.tr.Len() - 1
	if e.index < last {
		e.index++
	}
	if e.index >= last {
		e.status = Idle
		e.logger.Debug("playback finished", "algorithm", e.tr.Algorithm, "index", e.index)
	} else {
		e.schedule()
	}
	e.unlockNotify(true)
}

func (e *Engine) frame() Frame {
	f := FrameAt(e.tr, e.input, e.index)
	f.Status = e.status
	if e.src != nil {
		f.Algorithm = e.src.Name()
	}
	return f
}

// FrameAt builds an idle frame showing step i of tr over in. Before a trace
// exists it shows the original data.
func FrameAt(tr *trace.Trace, in Input, i int) Frame {
	f := Frame{
		Index: i,
		Total: tr.Len(),
		Graph: in.Graph.Clone(),
	}
	if tr != nil {
		f.Algorithm = tr.Algorithm
	}

	step := tr.At(i)
	if step == nil {
		f.Array = slices.Clone(in.Array)
		return f
	}
	f.Step = step
	if arr, ok := trace.ArraySnapshot(step); ok {
		f.Array = slices.Clone(arr)
	}
	if gs, ok := trace.GraphSnapshot(step); ok {
		f.State = gs
	}
	return f
}

// unlockNotify releases the lock and, when notify is set, sends the current
// frame to every observer.
func (e *Engine) unlockNotify(notify bool) {
	if !notify || len(e.observers) == 0 {
		e.mu.Unlock()
		return
	}
	f := e.frame()
	obs := slices.Clone(e.observers)
	e.mu.Unlock()

	for _, o := range obs {
		o.fn(f)
	}
}
