package playback

import (
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
)

type stubSource struct{}

func (stubSource) Name() string { return sorting.BubbleName }

func (stubSource) Generate(in Input) (*trace.Trace, error) {
	return sorting.Bubble(in.Array), nil
}
