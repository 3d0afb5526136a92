package macro_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/metascript-lang/metascript/internal/ast"
	"github.com/metascript-lang/metascript/internal/macro"
	"github.com/metascript-lang/metascript/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return prog
}

// expand parses src, expands it, and returns the surface form of the result.
func expand(t *testing.T, src string) string {
	t.Helper()
	expanded, err := macro.Expand(parse(t, src))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	return ast.Unparse(expanded)
}

func TestExpandSimple(t *testing.T) {
	got := expand(t, `macro twice(x):
    say x
    say x
@twice("Hi")
`)
	want := "say \"Hi\"\nsay \"Hi\"\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandSubstitutesExpressions(t *testing.T) {
	got := expand(t, `macro shout(msg):
    say msg
@shout(1 + 2)
`)
	want := "say (1 + 2)\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandHygiene(t *testing.T) {
	// The tmp bound inside the macro body is renamed; the caller's tmp
	// survives untouched.
	got := expand(t, `let tmp = 1
macro setup():
    let tmp = 99
    say tmp
@setup()
say tmp
`)
	want := "let tmp = 1\n" +
		"let __ms_macro_tmp_1 = 99\n" +
		"say __ms_macro_tmp_1\n" +
		"say tmp\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandFreshNamesPerInvocation(t *testing.T) {
	got := expand(t, `macro setup():
    let tmp = 99
    say tmp
@setup()
@setup()
`)
	want := "let __ms_macro_tmp_1 = 99\n" +
		"say __ms_macro_tmp_1\n" +
		"let __ms_macro_tmp_2 = 99\n" +
		"say __ms_macro_tmp_2\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandParametersNotRenamed(t *testing.T) {
	// A parameter assigned inside the body still substitutes to the
	// argument where it is read before binding; the binding itself keeps
	// hygiene out of the parameter namespace.
	got := expand(t, `macro inc(n):
    say n + 1
@inc(5)
`)
	want := "say (5 + 1)\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandSpliceIntoBlock(t *testing.T) {
	// A call expanding to several statements splices them all into the
	// surrounding body.
	got := expand(t, `macro pair():
    say "a"
    say "b"
if x:
    @pair()
`)
	want := "if x:\n    say \"a\"\n    say \"b\"\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandVisibleInNestedBlocks(t *testing.T) {
	// A macro defined at the top level is visible inside nested bodies.
	got := expand(t, `macro greet():
    say "hi"
def run():
    @greet()
`)
	want := "def run():\n    say \"hi\"\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandLexicalScope(t *testing.T) {
	// A macro defined inside a function body is not visible at the top
	// level: scoping is lexical, not dynamic.
	src := `def helper():
    macro inner():
        say "hi"
    @inner()
@inner()
`
	_, err := macro.Expand(parse(t, src))
	if err == nil {
		t.Fatal("Expand() expected error")
	}
	var ue *macro.UndefinedMacroError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %T, want *UndefinedMacroError", err)
	}
	if ue.Name != "inner" {
		t.Errorf("Name = %q, want %q", ue.Name, "inner")
	}
}

func TestExpandUndefined(t *testing.T) {
	_, err := macro.Expand(parse(t, "@nope()\n"))
	if err == nil {
		t.Fatal("Expand() expected error")
	}
	var ue *macro.UndefinedMacroError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %T, want *UndefinedMacroError", err)
	}
	if ue.Name != "nope" {
		t.Errorf("Name = %q, want %q", ue.Name, "nope")
	}
}

func TestExpandNestedMacroDefinitions(t *testing.T) {
	// A macro whose body defines and calls another macro: the inner
	// definition is scoped to the body and never emitted.
	got := expand(t, `macro outer():
    macro inner():
        say "deep"
    @inner()
@outer()
`)
	want := "say \"deep\"\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandDepthLimit(t *testing.T) {
	src := `macro loop():
    @loop()
@loop()
`
	_, err := macro.Expand(parse(t, src))
	if err == nil {
		t.Fatal("Expand() expected error")
	}
	var de *macro.ExpansionDepthError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T, want *ExpansionDepthError", err)
	}
	if de.Name != "loop" {
		t.Errorf("Name = %q, want %q", de.Name, "loop")
	}
	if de.Depth != 128 {
		t.Errorf("Depth = %d, want 128", de.Depth)
	}
}

func TestExpandIdempotent(t *testing.T) {
	prog := parse(t, `macro twice(x):
    say x
    say x
@twice("Hi")
`)
	once, err := macro.Expand(prog)
	if err != nil {
		t.Fatalf("first Expand() error = %v", err)
	}
	again, err := macro.Expand(once)
	if err != nil {
		t.Fatalf("second Expand() error = %v", err)
	}
	if diff := cmp.Diff(ast.Dict(once), ast.Dict(again)); diff != "" {
		t.Errorf("re-expansion changed the tree (-once +again):\n%s", diff)
	}
}

func TestExpandDeterministic(t *testing.T) {
	src := `macro setup():
    let a = 1
    let b = 2
    say a + b
@setup()
@setup()
`
	first := expand(t, src)
	second := expand(t, src)
	if first != second {
		t.Errorf("two expansions differ:\n%s\nvs:\n%s", first, second)
	}
}

func TestExpandInputUnchanged(t *testing.T) {
	prog := parse(t, `macro twice(x):
    say x
    say x
@twice("Hi")
`)
	before := ast.Dict(prog)
	if _, err := macro.Expand(prog); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if diff := cmp.Diff(before, ast.Dict(prog)); diff != "" {
		t.Errorf("Expand() modified its input (-before +after):\n%s", diff)
	}
}

func TestExpandCompoundBodies(t *testing.T) {
	// Macros inside loop and conditional bodies expand in place.
	got := expand(t, `macro note(x):
    say x
for i in 1..2:
    @note(i)
while p:
    @note("w")
`)
	want := "for i in range(1, (2 + 1)):\n    say i\n" +
		"while p:\n    say \"w\"\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandRemovesAllMacroNodes(t *testing.T) {
	expanded, err := macro.Expand(parse(t, `macro twice(x):
    say x
    say x
if y:
    @twice(1)
`))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	ast.Walk(expanded, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.MacroDef, *ast.MacroCall:
			t.Errorf("macro node %T survived expansion", n)
		}
		return true
	})
}
