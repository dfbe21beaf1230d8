// Package playback drives a recorded trace through time.
//
// An [Engine] owns the active trace, the current index and the run status
// (idle, running, paused). While running it advances one step per speed
// interval using a [Scheduler]; every other command (step, scrub, reset,
// speed change) cancels the pending advance. The displayed data is always
// taken from the step at the current index.
//
// [RealClock] schedules on wall time. [ManualClock] only moves when told to,
// which makes playback deterministic in tests and headless exports.
package playback
