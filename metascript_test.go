package metascript_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metascript-lang/metascript"
)

func TestParse(t *testing.T) {
	prog, err := metascript.Parse(`say "Hello"`)
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.Equal(t, `say "Hello"`, prog.Source())
}

func TestParseError(t *testing.T) {
	_, err := metascript.Parse("let = 5")
	require.Error(t, err)

	var pe *metascript.ParseError
	require.True(t, errors.As(err, &pe), "error = %T, want *ParseError", err)
	assert.Equal(t, 1, pe.Line)
	assert.Contains(t, pe.Error(), "parse error at")
}

func TestParseWithConfig(t *testing.T) {
	prog, err := metascript.ParseWithConfig(`say "Hi"`, &metascript.Config{Filename: "hello.ms"})
	require.NoError(t, err)
	require.NotNil(t, prog)
}

func TestMustParse(t *testing.T) {
	prog := metascript.MustParse(`say "Hi"`)
	require.NotNil(t, prog)

	assert.Panics(t, func() {
		metascript.MustParse("let = 5")
	})
}

func TestTranspilePython(t *testing.T) {
	out, err := metascript.TranspilePython(`say "Hello"`)
	require.NoError(t, err)
	assert.Equal(t, "print('Hello')\n", out)
}

func TestTranspileJS(t *testing.T) {
	out, err := metascript.TranspileJS(`say "Hello"`)
	require.NoError(t, err)
	assert.Equal(t, "console.log(\"Hello\");\n", out)
}

func TestProgramTargets(t *testing.T) {
	prog, err := metascript.Parse("macro twice(x):\n    say x\n    say x\n@twice(\"Hi\")\n")
	require.NoError(t, err)

	pyOut, err := prog.Python()
	require.NoError(t, err)
	assert.Equal(t, "print('Hi')\nprint('Hi')\n", pyOut)

	jsOut, err := prog.JS()
	require.NoError(t, err)
	assert.Equal(t, "console.log(\"Hi\");\nconsole.log(\"Hi\");\n", jsOut)
}

func TestProgramExpand(t *testing.T) {
	prog, err := metascript.Parse("macro twice(x):\n    say x\n    say x\n@twice(\"Hi\")\n")
	require.NoError(t, err)

	expanded, err := prog.Expand()
	require.NoError(t, err)

	surface := expanded.Surface()
	assert.Equal(t, "say \"Hi\"\nsay \"Hi\"\n", surface)
	assert.NotContains(t, surface, "@")
	assert.NotContains(t, surface, "macro")

	// The original program is untouched.
	assert.Contains(t, prog.Surface(), "macro twice")
}

func TestProgramSurfaceRoundTrip(t *testing.T) {
	src := "if x:\n    say \"y\"\nelse:\n    say \"n\"\n"
	prog, err := metascript.Parse(src)
	require.NoError(t, err)

	reparsed, err := metascript.Parse(prog.Surface())
	require.NoError(t, err)
	assert.Equal(t, prog.Surface(), reparsed.Surface())
}

func TestProgramDump(t *testing.T) {
	prog, err := metascript.Parse(`say "Hi"`)
	require.NoError(t, err)

	dump, err := prog.Dump()
	require.NoError(t, err)
	assert.True(t, strings.Contains(dump, `"Program"`))
	assert.True(t, strings.Contains(dump, `"Say"`))
}

func TestUndefinedMacroError(t *testing.T) {
	_, err := metascript.TranspilePython("@nope()\n")
	require.Error(t, err)

	var ue *metascript.UndefinedMacroError
	require.True(t, errors.As(err, &ue), "error = %T, want *UndefinedMacroError", err)
	assert.Equal(t, "nope", ue.Name)
}

func TestExpansionDepthError(t *testing.T) {
	src := "macro loop():\n    @loop()\n@loop()\n"
	_, err := metascript.TranspileJS(src)
	require.Error(t, err)

	var de *metascript.ExpansionDepthError
	require.True(t, errors.As(err, &de), "error = %T, want *ExpansionDepthError", err)
	assert.Equal(t, "loop", de.Name)
	assert.Equal(t, 128, de.Depth)
}

func TestUnsupportedConstructError(t *testing.T) {
	src := "match v:\n    case [[a], 2]: say a\n"
	_, err := metascript.TranspilePython(src)
	require.Error(t, err)

	var ce *metascript.UnsupportedConstructError
	require.True(t, errors.As(err, &ce), "error = %T, want *UnsupportedConstructError", err)
	assert.Equal(t, "nested list pattern", ce.Construct)
}

func TestConcurrentGeneration(t *testing.T) {
	// A parsed Program is immutable; generating from it concurrently must
	// always produce the same bytes.
	prog := metascript.MustParse("macro setup():\n    let tmp = 1\n    say tmp\n@setup()\n@setup()\n")

	want, err := prog.Python()
	require.NoError(t, err)

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			out, err := prog.Python()
			if err != nil {
				done <- "error: " + err.Error()
				return
			}
			done <- out
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}
