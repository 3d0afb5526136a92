package metascript

// Config holds configuration options for parsing.
type Config struct {
	// Filename is attached to source positions in error messages.
	// Empty means positions carry line and column only.
	Filename string
}
