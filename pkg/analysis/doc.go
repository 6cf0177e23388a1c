// Package analysis derives statistics for one project from a batch of tasks.
//
// The pipeline is a pure, synchronous transformation:
//
//	tasks -> Filter -> {Aggregate(all), Aggregate(bucket) per Axis} -> Assemble
//
// Every value it produces is built once and never mutated afterwards, so results
// may be shared freely between renderers.
package analysis
