// Package render converts generated Mermaid diagrams into image files.
//
// Two paths are available:
//
//   - [Mermaid]: shells out to the mermaid-cli (mmdc) executable, which
//     handles every diagram kind but requires a Node installation.
//   - [ToDOT] + [RenderSVG]/[RenderPNG]: translates flowcharts to Graphviz
//     DOT and renders them in-process. Sequence diagrams have no DOT
//     equivalent and must go through mmdc.
package render
