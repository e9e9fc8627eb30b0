// Package diagfmt renders diagnostics for people (Pretty) and for tools
// (JSON).
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses the path relative to the file set's base directory
	// when one is set, otherwise the path as loaded.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown before the primary line.
	Context   int
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the output, not the bag.
	Max          int
	IncludeNotes bool
}
