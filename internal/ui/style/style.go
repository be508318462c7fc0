// Package style provides shared UI styling primitives, colors and icons,
// for consistent visual presentation across the CLI.
package style

// Colors as hex strings, suitable for termenv.RGBColor.
const (
	Slate  = "#667085"
	Green  = "#22A06B"
	Red    = "#D93025"
	Yellow = "#F59E0B"
	Cyan   = "#0E7490"
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)
