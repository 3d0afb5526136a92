package metascript

import (
	"github.com/metascript-lang/metascript/internal/parser"
)

// Version is the metascript version string.
const Version = "0.1.0"

// Parse parses metascript source code into a Program.
// The returned Program can be expanded, unparsed, or lowered to any target.
//
// Example:
//
//	prog, err := metascript.Parse(`say "Hello"`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	py, err := prog.Python()
func Parse(source string) (*Program, error) {
	return ParseWithConfig(source, nil)
}

// ParseWithConfig parses metascript source code with configuration.
func ParseWithConfig(source string, config *Config) (*Program, error) {
	filename := ""
	if config != nil {
		filename = config.Filename
	}
	tree, err := parser.ParseFile([]byte(source), filename)
	if err != nil {
		return nil, convertParseErr(err)
	}
	return &Program{tree: tree, source: source}, nil
}

// MustParse is like Parse but panics if the source cannot be parsed.
// It simplifies initialization of global program variables.
func MustParse(source string) *Program {
	prog, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return prog
}

// TranspilePython is a convenience function that parses source and lowers it
// to Python in one call.
//
// Example:
//
//	py, err := metascript.TranspilePython(`say "Hello"`)
//	// py: "print('Hello')\n"
func TranspilePython(source string) (string, error) {
	prog, err := Parse(source)
	if err != nil {
		return "", err
	}
	return prog.Python()
}

// TranspileJS is a convenience function that parses source and lowers it to
// JavaScript in one call.
func TranspileJS(source string) (string, error) {
	prog, err := Parse(source)
	if err != nil {
		return "", err
	}
	return prog.JS()
}
