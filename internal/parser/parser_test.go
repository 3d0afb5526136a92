package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/metascript-lang/metascript/internal/ast"
	"github.com/metascript-lang/metascript/internal/parser"
)

// parseDict parses src and returns the canonical dict encoding of the tree,
// which makes the expectations below independent of positions.
func parseDict(t *testing.T, src string) any {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return ast.Dict(prog)
}

func TestParseEmpty(t *testing.T) {
	prog, err := parser.Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Statements) != 0 {
		t.Errorf("Statements = %d, want 0", len(prog.Statements))
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{
			name: "say string",
			src:  `say "Hello"`,
			want: map[string]any{"Say": map[string]any{"String": "Hello"}},
		},
		{
			name: "print",
			src:  `print 42`,
			want: map[string]any{"Print": map[string]any{"Int": 42}},
		},
		{
			name: "let with expression",
			src:  `let x = 1 + 2 * 3`,
			want: map[string]any{"Assign": map[string]any{
				"name": "x",
				"value": map[string]any{"BinaryOp": map[string]any{
					"op":   "+",
					"left": map[string]any{"Int": 1},
					"right": map[string]any{"BinaryOp": map[string]any{
						"op":    "*",
						"left":  map[string]any{"Int": 2},
						"right": map[string]any{"Int": 3},
					}},
				}},
			}},
		},
		{
			name: "assignment without let",
			src:  `x = f(2)`,
			want: map[string]any{"Assign": map[string]any{
				"name": "x",
				"value": map[string]any{"FunctionCall": map[string]any{
					"name": "f",
					"args": []any{map[string]any{"Int": 2}},
				}},
			}},
		},
		{
			name: "bare call statement",
			src:  `greet("Hi")`,
			want: map[string]any{"FunctionCall": map[string]any{
				"name": "greet",
				"args": []any{map[string]any{"String": "Hi"}},
			}},
		},
		{
			name: "inline if else",
			src:  `if x: say "y" else: say "n"`,
			want: map[string]any{"If": map[string]any{
				"cond":   map[string]any{"Name": "x"},
				"body":   []any{map[string]any{"Say": map[string]any{"String": "y"}}},
				"orelse": []any{map[string]any{"Say": map[string]any{"String": "n"}}},
			}},
		},
		{
			name: "block if else",
			src:  "if x:\n    say \"y\"\nelse:\n    say \"n\"\n",
			want: map[string]any{"If": map[string]any{
				"cond":   map[string]any{"Name": "x"},
				"body":   []any{map[string]any{"Say": map[string]any{"String": "y"}}},
				"orelse": []any{map[string]any{"Say": map[string]any{"String": "n"}}},
			}},
		},
		{
			name: "if without else",
			src:  "if x:\n    say 1\n",
			want: map[string]any{"If": map[string]any{
				"cond":   map[string]any{"Name": "x"},
				"body":   []any{map[string]any{"Say": map[string]any{"Int": 1}}},
				"orelse": nil,
			}},
		},
		{
			name: "while",
			src:  "while n:\n    n = n - 1\n",
			want: map[string]any{"While": map[string]any{
				"cond": map[string]any{"Name": "n"},
				"body": []any{map[string]any{"Assign": map[string]any{
					"name": "n",
					"value": map[string]any{"BinaryOp": map[string]any{
						"op":    "-",
						"left":  map[string]any{"Name": "n"},
						"right": map[string]any{"Int": 1},
					}},
				}}},
			}},
		},
		{
			name: "for over integer bound",
			src:  `for i in 3: say i`,
			want: map[string]any{"ForLoop": map[string]any{
				"var":  "i",
				"end":  map[string]any{"Int": 3},
				"body": []any{map[string]any{"Say": map[string]any{"Name": "i"}}},
			}},
		},
		{
			name: "for over iterable",
			src:  `for item in items: say item`,
			want: map[string]any{"ForLoop": map[string]any{
				"var":  "item",
				"end":  map[string]any{"Name": "items"},
				"body": []any{map[string]any{"Say": map[string]any{"Name": "item"}}},
			}},
		},
		{
			name: "inclusive range normalizes to range call",
			src:  `for i in 1..3: say i`,
			want: map[string]any{"ForLoop": map[string]any{
				"var": "i",
				"end": map[string]any{"FunctionCall": map[string]any{
					"name": "range",
					"args": []any{
						map[string]any{"Int": 1},
						map[string]any{"BinaryOp": map[string]any{
							"op":    "+",
							"left":  map[string]any{"Int": 3},
							"right": map[string]any{"Int": 1},
						}},
					},
				}},
				"body": []any{map[string]any{"Say": map[string]any{"Name": "i"}}},
			}},
		},
		{
			name: "function definition",
			src:  "def add(a, b):\n    return a + b\n",
			want: map[string]any{"FunctionDef": map[string]any{
				"name":     "add",
				"params":   []string{"a", "b"},
				"is_async": false,
				"body": []any{map[string]any{"Return": map[string]any{"BinaryOp": map[string]any{
					"op":    "+",
					"left":  map[string]any{"Name": "a"},
					"right": map[string]any{"Name": "b"},
				}}}},
			}},
		},
		{
			name: "async def with await",
			src:  "async def fetch(url):\n    return await get(url)\n",
			want: map[string]any{"FunctionDef": map[string]any{
				"name":     "fetch",
				"params":   []string{"url"},
				"is_async": true,
				"body": []any{map[string]any{"Return": map[string]any{"Await": map[string]any{
					"FunctionCall": map[string]any{
						"name": "get",
						"args": []any{map[string]any{"Name": "url"}},
					},
				}}}},
			}},
		},
		{
			name: "bare return",
			src:  "def f():\n    return\n",
			want: map[string]any{"FunctionDef": map[string]any{
				"name":     "f",
				"params":   []string(nil),
				"is_async": false,
				"body":     []any{map[string]any{"Return": nil}},
			}},
		},
		{
			name: "do block",
			src:  "do:\n    say 1\n    say 2\n",
			want: map[string]any{"DoBlock": []any{
				map[string]any{"Say": map[string]any{"Int": 1}},
				map[string]any{"Say": map[string]any{"Int": 2}},
			}},
		},
		{
			name: "match with list and wildcard patterns",
			src:  "match v:\n    case [a, 2]: say a\n    case _: say \"no\"\n",
			want: map[string]any{"Match": map[string]any{
				"subject": map[string]any{"Name": "v"},
				"cases": []any{
					map[string]any{
						"pattern": map[string]any{"Pattern": []any{
							map[string]any{"Pattern": map[string]any{"name": "a"}},
							map[string]any{"Pattern": map[string]any{"lit": map[string]any{"Int": 2}}},
						}},
						"body": []any{map[string]any{"Say": map[string]any{"Name": "a"}}},
					},
					map[string]any{
						"pattern": map[string]any{"Pattern": "_"},
						"body":    []any{map[string]any{"Say": map[string]any{"String": "no"}}},
					},
				},
			}},
		},
		{
			name: "negative literal pattern folds to an int",
			src:  "match v:\n    case -1: say \"neg\"\n",
			want: map[string]any{"Match": map[string]any{
				"subject": map[string]any{"Name": "v"},
				"cases": []any{map[string]any{
					"pattern": map[string]any{"Pattern": map[string]any{"lit": map[string]any{"Int": -1}}},
					"body":    []any{map[string]any{"Say": map[string]any{"String": "neg"}}},
				}},
			}},
		},
		{
			name: "match literal string pattern",
			src:  "match s:\n    case \"hi\": say 1\n",
			want: map[string]any{"Match": map[string]any{
				"subject": map[string]any{"Name": "s"},
				"cases": []any{map[string]any{
					"pattern": map[string]any{"Pattern": map[string]any{"lit": map[string]any{"String": "hi"}}},
					"body":    []any{map[string]any{"Say": map[string]any{"Int": 1}}},
				}},
			}},
		},
		{
			name: "macro definition and call",
			src:  "macro twice(x):\n    say x\n    say x\n@twice(\"Hi\")\n",
			want: nil, // checked below via full program
		},
		{
			name: "agent with key value payload",
			src:  `agent frontend ["type": "intent-draft"]`,
			want: map[string]any{"AgentCall": map[string]any{
				"agent":   "frontend",
				"payload": `"type": "intent-draft"`,
			}},
		},
		{
			name: "agent quoted string payload loses quotes",
			src:  `agent log ["hello"]`,
			want: map[string]any{"AgentCall": map[string]any{
				"agent":   "log",
				"payload": "hello",
			}},
		},
		{
			name: "list literal and unary minus",
			src:  `let x = [1, -2]`,
			want: map[string]any{"Assign": map[string]any{
				"name": "x",
				"value": map[string]any{"List": []any{
					map[string]any{"Int": 1},
					map[string]any{"UnaryOp": map[string]any{
						"op":      "-",
						"operand": map[string]any{"Int": 2},
					}},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDict(t, tt.src)
			if tt.want == nil {
				return
			}
			want := map[string]any{"Program": []any{tt.want}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMacro(t *testing.T) {
	src := "macro twice(x):\n    say x\n    say x\n@twice(\"Hi\")\n"
	want := map[string]any{"Program": []any{
		map[string]any{"MacroDef": map[string]any{
			"name":   "twice",
			"params": []string{"x"},
			"body": []any{
				map[string]any{"Say": map[string]any{"Name": "x"}},
				map[string]any{"Say": map[string]any{"Name": "x"}},
			},
		}},
		map[string]any{"MacroCall": map[string]any{
			"name": "twice",
			"args": []any{map[string]any{"String": "Hi"}},
		}},
	}}
	if diff := cmp.Diff(want, parseDict(t, src)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineMatchesBlockForm(t *testing.T) {
	inline := parseDict(t, `if x: say "y" else: say "n"`)
	block := parseDict(t, "if x:\n    say \"y\"\nelse:\n    say \"n\"\n")
	if diff := cmp.Diff(inline, block); diff != "" {
		t.Errorf("inline and block forms differ (-inline +block):\n%s", diff)
	}
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{
			name: "precedence",
			src:  "1 + 2 * 3",
			want: map[string]any{"BinaryOp": map[string]any{
				"op":   "+",
				"left": map[string]any{"Int": 1},
				"right": map[string]any{"BinaryOp": map[string]any{
					"op":    "*",
					"left":  map[string]any{"Int": 2},
					"right": map[string]any{"Int": 3},
				}},
			}},
		},
		{
			name: "parentheses override precedence",
			src:  "(1 + 2) * 3",
			want: map[string]any{"BinaryOp": map[string]any{
				"op": "*",
				"left": map[string]any{"BinaryOp": map[string]any{
					"op":    "+",
					"left":  map[string]any{"Int": 1},
					"right": map[string]any{"Int": 2},
				}},
				"right": map[string]any{"Int": 3},
			}},
		},
		{
			name: "left associativity",
			src:  "10 - 4 - 3",
			want: map[string]any{"BinaryOp": map[string]any{
				"op": "-",
				"left": map[string]any{"BinaryOp": map[string]any{
					"op":    "-",
					"left":  map[string]any{"Int": 10},
					"right": map[string]any{"Int": 4},
				}},
				"right": map[string]any{"Int": 3},
			}},
		},
		{
			name: "nested calls",
			src:  "max(5, min(a, b))",
			want: map[string]any{"FunctionCall": map[string]any{
				"name": "max",
				"args": []any{
					map[string]any{"Int": 5},
					map[string]any{"FunctionCall": map[string]any{
						"name": "min",
						"args": []any{
							map[string]any{"Name": "a"},
							map[string]any{"Name": "b"},
						},
					}},
				},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.src)
			if err != nil {
				t.Fatalf("ParseExpr(%q) error = %v", tt.src, err)
			}
			if diff := cmp.Diff(tt.want, ast.Dict(expr)); diff != "" {
				t.Errorf("expression mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string // substring of the first error message
	}{
		{"let without name", "let = 5", "expected name"},
		{"if without colon", "if x say 1", "expected :"},
		{"say without expression", "say", "expected expression"},
		{"macro call without parens", "@m", "expected ("},
		{"agent without payload", "agent x", "expected ["},
		{"agent payload not decodable", "agent x [::bad::]", "invalid agent payload"},
		{"empty block", "if x:\n    \nsay 2\n", "expected indent"},
		{"unterminated string", `say "abc`, "unterminated string"},
		{"match without cases", "match v:\n    say 1\n", "expected case"},
		{"negated string pattern", "match v:\n    case -\"x\": say 1\n", "pattern literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.src)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// One bad statement must not swallow the rest of the program: both
	// errors are reported.
	_, err := parser.Parse("say\nlet = 1\n")
	if err == nil {
		t.Fatal("expected errors")
	}
	var el parser.ErrorList
	if !errors.As(err, &el) {
		t.Fatalf("error = %T, want parser.ErrorList", err)
	}
	if len(el) < 2 {
		t.Errorf("errors = %d, want at least 2", len(el))
	}
}

func TestParseErrorListUnwrap(t *testing.T) {
	// errors.As reaches the individual *ParseError through the list.
	_, err := parser.Parse("say\nlet = 1\n")
	if err == nil {
		t.Fatal("expected errors")
	}
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("errors.As(%T) did not find a *ParseError", err)
	}
	if pe.Pos.Line != 1 {
		t.Errorf("first error line = %d, want 1", pe.Pos.Line)
	}
}

func TestParseErrorPositions(t *testing.T) {
	_, err := parser.Parse("say 1\nlet = 5\n")
	if err == nil {
		t.Fatal("expected error")
	}
	var el parser.ErrorList
	if !errors.As(err, &el) {
		t.Fatalf("error = %T, want parser.ErrorList", err)
	}
	if el[0].Pos.Line != 2 {
		t.Errorf("error line = %d, want 2", el[0].Pos.Line)
	}
}

func TestParseFileCarriesFilename(t *testing.T) {
	prog, err := parser.ParseFile([]byte(`say "Hi"`), "hello.ms")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if prog.Filename != "hello.ms" {
		t.Errorf("Filename = %q, want %q", prog.Filename, "hello.ms")
	}

	_, err = parser.ParseFile([]byte("let = 5"), "bad.ms")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "bad.ms:") {
		t.Errorf("error %q does not carry filename", err.Error())
	}
}

func TestParseStatementPositions(t *testing.T) {
	prog, err := parser.Parse("say 1\nsay 2\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("Statements = %d, want 2", len(prog.Statements))
	}
	if got := prog.Statements[0].Pos().Line; got != 1 {
		t.Errorf("first statement line = %d, want 1", got)
	}
	if got := prog.Statements[1].Pos().Line; got != 2 {
		t.Errorf("second statement line = %d, want 2", got)
	}
}
