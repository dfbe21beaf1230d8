package playback_test

import (
	"errors"
	"strconv"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/search"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
)

type bubble struct {
	calls int
}

func (b *bubble) Name() string { return sorting.BubbleName }

func (b *bubble) Generate(in playback.Input) (*trace.Trace, error) {
	b.calls++
	return sorting.Bubble(in.Array), nil
}

type bfs struct{}

func (bfs) Name() string { return search.BFSName }

func (bfs) Generate(in playback.Input) (*trace.Trace, error) {
	return search.BFS(in.Graph, in.Start, in.End)
}

const speed = 100 * time.Millisecond

var _ = Describe("Engine", func() {
	var (
		clock  *playback.ManualClock
		src    *bubble
		engine *playback.Engine
		origin []float64
	)

	BeforeEach(func() {
		clock = playback.NewManualClock()
		src = &bubble{}
		origin = []float64{5, 1, 4, 2, 8}
		engine = playback.New(src, playback.Input{Array: origin},
			playback.WithClock(clock), playback.WithSpeed(speed))
	})

	AfterEach(func() {
		engine.Close()
	})

	Describe("before playing", func() {
		It("is idle with no trace and shows the original data", func() {
			f := engine.Frame()
			Expect(f.Status).To(Equal(playback.Idle))
			Expect(f.Total).To(BeZero())
			Expect(f.Step).To(BeNil())
			Expect(f.Array).To(Equal(origin))
		})

		It("ignores stepping", func() {
			engine.StepForward()
			engine.End()
			Expect(engine.Index()).To(BeZero())
			Expect(src.calls).To(BeZero())
		})

		It("fails to play without a source", func() {
			e := playback.New(nil, playback.Input{}, playback.WithClock(clock))
			Expect(e.Play()).To(MatchError(playback.ErrNoSource))
		})

		It("reports generation errors", func() {
			e := playback.New(bfs{}, playback.Input{Graph: &graph.Graph{}}, playback.WithClock(clock))
			err := e.Play()
			var ie *trace.InputError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(e.Status()).To(Equal(playback.Idle))
		})
	})

	Describe("auto-advance", func() {
		It("advances once per interval and stops at the last step", func() {
			Expect(engine.Play()).To(Succeed())
			total := engine.Frame().Total
			Expect(total).To(BeNumerically(">", 2))

			clock.Advance(speed - time.Millisecond)
			Expect(engine.Index()).To(BeZero())

			clock.Advance(time.Millisecond)
			Expect(engine.Index()).To(Equal(1))

			clock.Advance(speed * time.Duration(total*2))
			Expect(engine.Index()).To(Equal(total - 1))
			Expect(engine.Status()).To(Equal(playback.Idle))
			Expect(clock.Pending()).To(BeZero())
		})

		It("visits strictly increasing indices", func() {
			var seen []int
			engine.Observe(func(f playback.Frame) { seen = append(seen, f.Index) })

			Expect(engine.Play()).To(Succeed())
			for engine.Status() == playback.Running {
				clock.Advance(speed)
			}

			Expect(seen).To(HaveLen(engine.Frame().Total))
			for i := 1; i < len(seen); i++ {
				Expect(seen[i]).To(Equal(seen[i-1] + 1))
			}
		})

		It("adopts the array of each step", func() {
			Expect(engine.Play()).To(Succeed())
			for engine.Status() == playback.Running {
				clock.Advance(speed)
				f := engine.Frame()
				arr, _ := trace.ArraySnapshot(f.Step)
				Expect(f.Array).To(Equal(arr))
			}
			Expect(engine.Frame().Array).To(Equal([]float64{1, 2, 4, 5, 8}))
		})

		It("rewinds when played from the end", func() {
			Expect(engine.Play()).To(Succeed())
			engine.End()
			Expect(engine.Status()).To(Equal(playback.Idle))

			Expect(engine.Play()).To(Succeed())
			Expect(engine.Index()).To(BeZero())
			Expect(engine.Status()).To(Equal(playback.Running))
			Expect(src.calls).To(Equal(1))
		})
	})

	Describe("pause and resume", func() {
		It("freezes the index and resumes without regenerating", func() {
			Expect(engine.Play()).To(Succeed())
			clock.Advance(speed * 2)
			engine.Pause()
			Expect(engine.Status()).To(Equal(playback.Paused))

			clock.Advance(speed * 10)
			Expect(engine.Index()).To(Equal(2))

			Expect(engine.Toggle()).To(Succeed())
			Expect(engine.Status()).To(Equal(playback.Running))
			clock.Advance(speed)
			Expect(engine.Index()).To(Equal(3))
			Expect(src.calls).To(Equal(1))
		})

		It("pauses on toggle while running", func() {
			Expect(engine.Play()).To(Succeed())
			Expect(engine.Toggle()).To(Succeed())
			Expect(engine.Status()).To(Equal(playback.Paused))
			Expect(clock.Pending()).To(BeZero())
		})

		It("never strands a toggle that races the final tick", func() {
			for range 200 {
				c := playback.NewManualClock()
				e := playback.New(&bubble{}, playback.Input{Array: origin},
					playback.WithClock(c), playback.WithSpeed(speed))
				Expect(e.Play()).To(Succeed())
				last := e.Trace().Len() - 1
				c.Advance(speed * time.Duration(last-1))
				Expect(e.Index()).To(Equal(last - 1))

				var wg sync.WaitGroup
				wg.Add(2)
				go func() {
					defer wg.Done()
					c.Advance(speed)
				}()
				go func() {
					defer wg.Done()
					_ = e.Toggle()
				}()
				wg.Wait()

				// either the toggle paused before the last step, or it
				// replayed from the start after the tick finished
				switch e.Status() {
				case playback.Paused:
					Expect(e.Index()).To(Equal(last - 1))
				case playback.Running:
					Expect(e.Index()).To(BeZero())
				default:
					Fail("toggle left the engine idle at step " + strconv.Itoa(e.Index()))
				}
				e.Close()
			}
		})
	})

	Describe("stepping and scrubbing", func() {
		BeforeEach(func() {
			Expect(engine.Prepare()).To(Succeed())
		})

		It("clamps to the trace", func() {
			engine.StepBack()
			Expect(engine.Index()).To(BeZero())

			engine.ScrubTo(1 << 20)
			Expect(engine.Index()).To(Equal(engine.Frame().Total - 1))
			engine.StepForward()
			Expect(engine.Index()).To(Equal(engine.Frame().Total - 1))

			engine.ScrubTo(-5)
			Expect(engine.Index()).To(BeZero())
		})

		It("is idempotent", func() {
			engine.ScrubTo(4)
			first := engine.Frame()
			engine.ScrubTo(4)
			Expect(engine.Frame()).To(Equal(first))
		})

		It("derives data from the target step regardless of path", func() {
			engine.ScrubTo(7)
			direct := engine.Frame().Array

			engine.Home()
			for range 7 {
				engine.StepForward()
			}
			Expect(engine.Frame().Array).To(Equal(direct))
		})

		It("keeps a paused engine paused", func() {
			Expect(engine.Play()).To(Succeed())
			engine.Pause()
			engine.StepForward()
			Expect(engine.Status()).To(Equal(playback.Paused))
			clock.Advance(speed * 5)
			Expect(engine.Index()).To(Equal(1))
		})

		It("restarts the interval while running", func() {
			Expect(engine.Play()).To(Succeed())
			clock.Advance(speed / 2)
			engine.ScrubTo(3)

			clock.Advance(speed / 2)
			Expect(engine.Index()).To(Equal(3))
			clock.Advance(speed / 2)
			Expect(engine.Index()).To(Equal(4))
		})

		It("idles when scrubbed to the end while running", func() {
			Expect(engine.Play()).To(Succeed())
			engine.End()
			Expect(engine.Status()).To(Equal(playback.Idle))
			Expect(clock.Pending()).To(BeZero())
		})
	})

	Describe("reset", func() {
		It("restores the original data and keeps the trace", func() {
			Expect(engine.Play()).To(Succeed())
			clock.Advance(speed * 20)
			tr := engine.Trace()

			engine.Reset()
			f := engine.Frame()
			Expect(f.Index).To(BeZero())
			Expect(f.Status).To(Equal(playback.Idle))
			Expect(f.Array).To(Equal(origin))
			Expect(engine.Trace()).To(BeIdenticalTo(tr))

			clock.Advance(speed * 5)
			Expect(engine.Index()).To(BeZero())
		})
	})

	Describe("regenerate and source switch", func() {
		It("discards the trace and regenerates on play", func() {
			Expect(engine.Play()).To(Succeed())
			clock.Advance(speed * 3)

			next := []float64{3, 2, 1}
			engine.Regenerate(playback.Input{Array: next})
			f := engine.Frame()
			Expect(f.Total).To(BeZero())
			Expect(f.Array).To(Equal(next))
			Expect(clock.Pending()).To(BeZero())

			Expect(engine.Play()).To(Succeed())
			Expect(src.calls).To(Equal(2))
			Expect(engine.Frame().Array).To(Equal(next))
		})

		It("discards the trace on source change", func() {
			Expect(engine.Prepare()).To(Succeed())
			other := &bubble{}
			engine.SetSource(other)
			Expect(engine.Trace()).To(BeNil())
			Expect(engine.Play()).To(Succeed())
			Expect(other.calls).To(Equal(1))
		})

		It("does not alias the caller's input", func() {
			origin[0] = 99
			Expect(engine.Frame().Array[0]).To(Equal(5.0))
		})
	})

	Describe("speed", func() {
		It("reschedules the pending step", func() {
			Expect(engine.Play()).To(Succeed())
			clock.Advance(speed / 2)
			Expect(engine.SetSpeed(speed * 4)).To(Succeed())

			clock.Advance(speed * 3)
			Expect(engine.Index()).To(BeZero())
			clock.Advance(speed)
			Expect(engine.Index()).To(Equal(1))
		})

		It("rejects non-positive delays", func() {
			Expect(engine.SetSpeed(0)).To(MatchError(playback.ErrInvalidSpeed))
			Expect(engine.Speed()).To(Equal(speed))
		})
	})

	Describe("graph traces", func() {
		It("exposes the graph and step state", func() {
			g := &graph.Graph{
				Nodes: []graph.Node{{ID: "A"}, {ID: "B"}},
				Edges: []graph.Edge{{ID: "AB", From: "A", To: "B", Weight: 1}},
			}
			e := playback.New(bfs{}, playback.Input{Graph: g, Start: "A", End: "B"}, playback.WithClock(clock))
			Expect(e.Prepare()).To(Succeed())
			e.End()

			f := e.Frame()
			Expect(f.Graph.NodeIDs()).To(Equal([]string{"A", "B"}))
			Expect(f.State).NotTo(BeNil())
			Expect(f.State.Path).To(Equal([]string{"A", "B"}))
			Expect(f.Array).To(BeNil())
			Expect(f.Done()).To(BeTrue())
		})

		It("hands observers a copy of the graph", func() {
			g := &graph.Graph{
				Nodes: []graph.Node{{ID: "A"}, {ID: "B"}},
				Edges: []graph.Edge{{ID: "AB", From: "A", To: "B", Weight: 1}},
			}
			e := playback.New(bfs{}, playback.Input{Graph: g, Start: "A", End: "B"}, playback.WithClock(clock))
			Expect(e.Prepare()).To(Succeed())

			f := e.Frame()
			f.Graph.Nodes[0].ID = "Q"
			f.Graph.Edges = nil

			Expect(e.Frame().Graph.NodeIDs()).To(Equal([]string{"A", "B"}))
			Expect(e.Input().Graph.Edges).To(HaveLen(1))
			e.Reset()
			Expect(e.Frame().Graph.NodeIDs()).To(Equal([]string{"A", "B"}))
		})
	})
})
