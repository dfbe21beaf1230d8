// Package sorting generates step traces for comparison sorts.
//
// Each generator runs its algorithm to completion on a private copy of the
// input and records every observable moment as a [trace.ArrayStep] whose
// Array field is the working array after that moment:
//
//   - [Bubble]: adjacent compare/swap passes with early exit
//   - [Merge]: top-down stable merge sort
//   - [Quick]: Lomuto partition, last element as pivot
//
// The Func variants accept any element type with a three-way comparison, in
// the style of slices.SortFunc. The plain variants sort float64 values and
// return a ready [trace.Trace].
package sorting
