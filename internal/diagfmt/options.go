package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeFull shows the path as loaded.
	PathModeFull PathMode = iota
	// PathModeBasename shows only the file name.
	PathModeBasename
)

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color       bool
	PathMode    PathMode
	Width       int // maximum line width, 0 = unbounded
	ShowPreview bool
}

// JSONOpts configures machine-readable diagnostic output.
type JSONOpts struct {
	PathMode PathMode
	Max      int // truncate output after this many diagnostics, 0 = all
}
