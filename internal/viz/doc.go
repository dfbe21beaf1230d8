// Package viz draws playback frames in the terminal.
//
//   - [Canvas]: braille dot canvas whose cells carry a [Tag] for coloring
//   - [DrawArray], [DrawGraph]: bar and node-link renderings of a step
//   - [Plot], [Activity]: asciigraph charts over a trace
//   - [Theme]: color schemes mapping tags to colors
//
// Rendering is pure: the same frame always draws the same canvas, which is
// what the GIF capture relies on.
package viz
