// Package trace defines the step vocabulary shared by every algorithm
// generator.
//
// A run of an algorithm is recorded eagerly as a [Trace]: an ordered list of
// [Step] values, each one a self-contained snapshot of the moment it
// describes. Seeking to any index therefore never requires replaying the
// steps before it.
//
// Step is a closed set of variants, tagged by [Kind]:
//
//   - [ArrayStep]: sorting algorithms (positions + full array snapshot)
//   - [BFSStep]: breadth-first search (visited set, frontier, level)
//   - [DijkstraStep]: shortest path (visited set, distance map)
//
// Consumers switch on the concrete type and treat an unknown variant as a
// programming error.
package trace
