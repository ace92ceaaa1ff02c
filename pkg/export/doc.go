// Package export turns resolved IcePanel data into renderable Mermaid
// graphs.
//
// [Exporter.Diagram] rebuilds a diagram's parent/child grouping hierarchy
// into a flowchart with nested subgraphs, inferring relationships from
// model connections when the diagram itself carries none.
// [Exporter.Flow] walks a flow's steps in index order and produces a
// sequence diagram of the participating model objects.
//
// An Exporter owns its resolver state and is meant to live for exactly one
// invocation; callers needing fresh data build a fresh Exporter.
package export
