package metascript

import (
	"errors"
	"fmt"

	"github.com/metascript-lang/metascript/internal/codegen"
	"github.com/metascript-lang/metascript/internal/macro"
	"github.com/metascript-lang/metascript/internal/parser"
)

// ParseError represents a syntax error in metascript source code.
type ParseError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// UndefinedMacroError represents a macro call whose name is not visible in
// the lexical scope of the call site at expansion time.
type UndefinedMacroError struct {
	Name string // The unresolved macro name
}

func (e *UndefinedMacroError) Error() string {
	return fmt.Sprintf("undefined macro '%s'", e.Name)
}

// ExpansionDepthError represents a macro expansion aborted at the recursion
// limit, the failure mode of a self- or mutually-recursive macro.
type ExpansionDepthError struct {
	Name  string // The macro being expanded when the limit was hit
	Depth int    // The limit
}

func (e *ExpansionDepthError) Error() string {
	return fmt.Sprintf("macro '%s' exceeded expansion depth %d", e.Name, e.Depth)
}

// UnsupportedConstructError represents a tree node a code generator has no
// lowering rule for. Generation aborts with no partial output.
type UnsupportedConstructError struct {
	Construct string // Description of the offending construct
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}

// convertParseErr maps internal parser errors to the public taxonomy.
func convertParseErr(err error) error {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Pos.Line, Column: pe.Pos.Column, Message: pe.Message}
	}
	var el parser.ErrorList
	if errors.As(err, &el) && len(el) > 0 {
		return &ParseError{Line: el[0].Pos.Line, Column: el[0].Pos.Column, Message: el[0].Message}
	}
	return &ParseError{Message: err.Error()}
}

// convertExpandErr maps internal expander errors to the public taxonomy.
func convertExpandErr(err error) error {
	var ue *macro.UndefinedMacroError
	if errors.As(err, &ue) {
		return &UndefinedMacroError{Name: ue.Name}
	}
	var de *macro.ExpansionDepthError
	if errors.As(err, &de) {
		return &ExpansionDepthError{Name: de.Name, Depth: de.Depth}
	}
	return err
}

// convertGenErr maps internal generator errors to the public taxonomy.
func convertGenErr(err error) error {
	var ce *codegen.UnsupportedConstructError
	if errors.As(err, &ce) {
		return &UnsupportedConstructError{Construct: ce.Construct}
	}
	return convertExpandErr(err)
}
