package macro

import (
	"fmt"

	"github.com/metascript-lang/metascript/internal/token"
)

// UndefinedMacroError reports a macro call whose name is not bound in the
// lexical scope of the call site.
type UndefinedMacroError struct {
	Name string
	Pos  token.Position
}

func (e *UndefinedMacroError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: undefined macro '%s'", e.Pos, e.Name)
	}
	return fmt.Sprintf("undefined macro '%s'", e.Name)
}

// ExpansionDepthError reports a macro expansion that exceeded the recursion
// limit, which indicates a self- or mutually-recursive macro.
type ExpansionDepthError struct {
	Name  string
	Depth int
}

func (e *ExpansionDepthError) Error() string {
	return fmt.Sprintf("macro '%s' exceeded expansion depth %d (recursive macro?)", e.Name, e.Depth)
}
