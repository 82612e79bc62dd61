// Package viz renders simulation output for the terminal.
//
// Charts are drawn with asciigraph, radar frames on a Braille [Canvas] and
// tables with lipgloss styles:
//
//   - [Chart]: indicator or driver series over time
//   - [Radar]: one radar frame as a Braille polygon
//   - [ScenarioTable], [MetricsTable]: styled summaries
package viz
