package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/metascript-lang/metascript"
)

const (
	historyFile = ".msc_history"
	promptMain  = "ms> "
	promptCont  = "... "
)

var outColor = color.New(color.FgCyan)

var replCommand = cli.Command{
	Action: repl,
	Name:   "repl",
	Usage:  "Start an interactive session",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "target, t",
			Value: "py",
			Usage: "generation target: py or js",
		},
	},
	Description: `The repl command reads metascript statements interactively
and prints their lowering for the selected target. A line ending in a colon
opens a block; finish the block with an empty line.`,
}

func repl(ctx *cli.Context) error {
	target := ctx.String("target")
	if target != "py" && target != "js" {
		return fmt.Errorf("unknown target %q (want py or js)", target)
	}
	fmt.Printf("metascript %s REPL (target: %s)\nCtrl+D exits.\n", metascript.Version, target)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readSnippet(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		var out string
		var err error
		if target == "js" {
			out, err = metascript.TranspileJS(code)
		} else {
			out, err = metascript.TranspilePython(code)
		}
		if err != nil {
			errColor.Fprintln(os.Stderr, err)
			continue
		}
		outColor.Print(out)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readSnippet reads one snippet: a single line, or a block continued until
// an empty line when the previous line opened a block with a colon.
func readSnippet(ln *liner.State) (string, bool) {
	var sb strings.Builder
	prompt := promptMain

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return sb.String(), true
		}

		if sb.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return sb.String(), true
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		if !strings.HasSuffix(strings.TrimSpace(sb.String()), ":") && prompt == promptMain {
			return sb.String(), true
		}
		prompt = promptCont
	}
}
