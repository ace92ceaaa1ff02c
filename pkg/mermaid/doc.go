// Package mermaid holds two minimal graph models and their serialization
// into Mermaid text grammars: [Flowchart] for hierarchical diagrams
// (flowchart with nested subgraphs) and [Sequence] for ordered flows
// (sequence diagram with participants).
//
// Both models are pure in-memory structures with no I/O. Generation is
// deterministic and idempotent: nodes and participants render in the order
// they were added, and internal derived state is rebuilt from scratch on
// every Generate call.
package mermaid
