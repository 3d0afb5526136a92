// msc - metascript compiler
//
// Command-line front end for the metascript compiler: lowers metascript
// source to Python or JavaScript, dumps trees, expands macros, and hosts an
// interactive REPL.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/metascript-lang/metascript"
	"github.com/metascript-lang/metascript/internal/ast"
	"github.com/metascript-lang/metascript/internal/parser"
)

var errColor = color.New(color.FgRed)

func main() {
	app := cli.NewApp()
	app.Name = "msc"
	app.Usage = "metascript compiler"
	app.Version = metascript.Version
	app.Commands = []cli.Command{
		buildCommand,
		astCommand,
		expandCommand,
		statsCommand,
		replCommand,
	}

	if err := app.Run(os.Args); err != nil {
		errColor.Fprintf(os.Stderr, "msc: %v\n", err)
		os.Exit(1)
	}
}

var buildCommand = cli.Command{
	Action:    build,
	Name:      "build",
	Usage:     "Lower a metascript file to a target language",
	ArgsUsage: "<file.ms>",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "target, t",
			Value: "py",
			Usage: "generation target: py or js",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "write output to file instead of stdout",
		},
	},
	Description: `The build command parses a metascript source file, expands
its macros, and emits source text for the selected target.`,
}

func build(ctx *cli.Context) error {
	prog, err := loadProgram(ctx)
	if err != nil {
		return err
	}

	var out string
	switch target := ctx.String("target"); target {
	case "py", "python":
		out, err = prog.Python()
	case "js", "javascript":
		out, err = prog.JS()
	default:
		return fmt.Errorf("unknown target %q (want py or js)", target)
	}
	if err != nil {
		return err
	}

	if dest := ctx.String("output"); dest != "" {
		return os.WriteFile(dest, []byte(out), 0o644)
	}
	fmt.Print(out)
	return nil
}

var astCommand = cli.Command{
	Action:    dumpAST,
	Name:      "ast",
	Usage:     "Print the canonical JSON serialization of a file's tree",
	ArgsUsage: "<file.ms>",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "expand, e",
			Usage: "expand macros before dumping",
		},
	},
}

func dumpAST(ctx *cli.Context) error {
	prog, err := loadProgram(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool("expand") {
		prog, err = prog.Expand()
		if err != nil {
			return err
		}
	}
	out, err := prog.Dump()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

var expandCommand = cli.Command{
	Action:    expand,
	Name:      "expand",
	Usage:     "Expand macros and print the resulting surface syntax",
	ArgsUsage: "<file.ms>",
	Description: `The expand command runs macro expansion and unparses the
result, showing the macro-free program the generators would lower.`,
}

func expand(ctx *cli.Context) error {
	prog, err := loadProgram(ctx)
	if err != nil {
		return err
	}
	expanded, err := prog.Expand()
	if err != nil {
		return err
	}
	fmt.Print(expanded.Surface())
	return nil
}

var statsCommand = cli.Command{
	Action:    stats,
	Name:      "stats",
	Usage:     "Show node counts for a metascript file",
	ArgsUsage: "<file.ms>",
}

func stats(ctx *cli.Context) error {
	file, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	tree, err := parser.ParseFile(src, file)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	total := 0
	ast.Walk(tree, func(n ast.Node) bool {
		counts[strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")]++
		total++
		return true
	})

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Node", "Count"})
	for _, k := range kinds {
		table.Append([]string{k, fmt.Sprintf("%d", counts[k])})
	}
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()
	return nil
}

// loadProgram reads and parses the file named by the first argument.
func loadProgram(ctx *cli.Context) (*metascript.Program, error) {
	file, src, err := readSource(ctx)
	if err != nil {
		return nil, err
	}
	return metascript.ParseWithConfig(string(src), &metascript.Config{Filename: file})
}

func readSource(ctx *cli.Context) (string, []byte, error) {
	file := ctx.Args().First()
	if file == "" {
		return "", nil, fmt.Errorf("no input file (usage: msc %s <file.ms>)", ctx.Command.Name)
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return "", nil, fmt.Errorf("cannot read %s: %v", file, err)
	}
	return file, src, nil
}
