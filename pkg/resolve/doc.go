// Package resolve reconstructs a coherent set of objects and relationships
// for an IcePanel diagram despite the API exposing that data under several
// different, sometimes empty, response shapes.
//
// Three components cooperate:
//
//   - [Store] memoizes model-object lookups for the lifetime of one run and
//     substitutes placeholder objects for lookups that fail, so rendering
//     always has a label to work with.
//   - [Resolver] produces a normalized objects/relationships pair for a
//     diagram id by probing an ordered list of extraction strategies over
//     the primary payload and the diagram sub-resource endpoints. Results
//     are cached per diagram id for the rest of the run.
//   - [Inferencer] derives relationships from the global model-connections
//     resource when a diagram's own relationship list is empty.
//
// All state lives on the component instances; there are no package-level
// caches. Everything is synchronous and single-threaded: a Resolver and its
// Store must not be shared across goroutines.
package resolve
