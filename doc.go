// Package metascript provides a compiler front end for the metascript
// language: an indentation-aware parser, a hygienic compile-time macro
// expander, two code generators (Python and JavaScript), and a surface
// syntax unparser.
//
// # Quick Start
//
// For one-off transpilation:
//
//	py, err := metascript.TranspilePython(`say "Hello"`)
//	// py: "print('Hello')\n"
//
// For repeated use of the same program:
//
//	prog, err := metascript.Parse(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	py, _ := prog.Python()
//	js, _ := prog.JS()
//
// # Macros
//
// Macros are expanded at compile time with hygiene and lexical scoping:
//
//	macro twice(x):
//	    say x
//	    say x
//	@twice("Hi")
//
// lowers to two print calls. Names bound inside a macro body are renamed to
// fresh names at every call site, so they cannot collide with surrounding
// code. [Program.Expand] exposes the expansion step directly; the code
// generators run it internally.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors in metascript source
//   - [UndefinedMacroError]: a macro call with no definition in scope
//   - [ExpansionDepthError]: a recursive macro hit the expansion limit
//   - [UnsupportedConstructError]: a generator has no lowering for a node
//
// # Thread Safety
//
// Parsed [Program] values are immutable and safe for concurrent use. Each
// expansion owns its fresh-name counter, so concurrent compilations never
// interleave generated names and identical input always produces identical
// output.
package metascript
