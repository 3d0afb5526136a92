package codegen

import (
	"fmt"

	"github.com/metascript-lang/metascript/internal/token"
)

// UnsupportedConstructError reports a node the generator has no lowering
// rule for. Generation aborts; no partial output is returned.
type UnsupportedConstructError struct {
	Construct string
	Pos       token.Position
}

func (e *UnsupportedConstructError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: unsupported construct: %s", e.Pos, e.Construct)
	}
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}
