package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-courseware/cmd/coursewarec/internal/bootstrap"
	compilecmd "github.com/goliatone/go-courseware/internal/commands/compile"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("coursewarec: %v", err)
	}
}

func run(args []string) error {
	return newApp(os.Stdout).Run(append([]string{"coursewarec"}, args...))
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "coursewarec",
		Usage:  "compile markdown course corpora into flattened modules and courses",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "content-dir", Value: "content", Usage: "path to the markdown content root"},
			&cli.StringFlag{Name: "pattern", Value: "*.md", Usage: "glob pattern applied when discovering corpus files"},
			&cli.IntFlag{Name: "workers", Usage: "parse worker count, zero means one per CPU"},
			&cli.StringFlag{Name: "default-tier", Usage: "tier assumed for files that declare none"},
			&cli.StringFlag{Name: "tier-precedence", Usage: "tier conflict rule: strictest, outermost, or innermost"},
			&cli.StringFlag{Name: "log-level", Usage: "enable console logging at the given level"},
		},
		Commands: []*cli.Command{
			{
				Name:  "compile",
				Usage: "compile the corpus and emit the result as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "module", Usage: "compile a single module by corpus path or slug"},
					&cli.BoolFlag{Name: "render-html", Usage: "render text segment markdown into HTML"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the result to a file instead of stdout"},
				},
				Action: compileAction,
			},
			{
				Name:  "lint",
				Usage: "report corpus findings without emitting compiled output",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the report to a file instead of stdout"},
				},
				Action: lintAction,
			},
		},
	}
}

func compileAction(c *cli.Context) error {
	module, err := moduleBuilder(buildOptions(c))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("compiler service not configured")
	}

	gates := compilecmd.FeatureGates{CommandsEnabled: func() bool { return true }}

	var result *interfaces.CompileResult
	sink := func(_ context.Context, compiled *interfaces.CompileResult) {
		result = compiled
	}

	if target := strings.TrimSpace(c.String("module")); target != "" {
		handler := compilecmd.NewCompileModuleHandler(module.Service, module.Logger, gates, sink)
		err = handler.Execute(c.Context, compilecmd.CompileModuleCommand{
			Directory: c.String("content-dir"),
			Patterns:  patternList(c),
			Module:    target,
		})
	} else {
		handler := compilecmd.NewCompileCorpusHandler(module.Service, module.Logger, gates, sink)
		err = handler.Execute(c.Context, compilecmd.CompileCorpusCommand{
			Directory: c.String("content-dir"),
			Patterns:  patternList(c),
		})
	}
	if err != nil {
		return fmt.Errorf("execute compile command: %w", err)
	}
	if result == nil {
		return fmt.Errorf("compile produced no result")
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return writeOutput(c, append(encoded, '\n'))
}

func lintAction(c *cli.Context) error {
	module, err := moduleBuilder(buildOptions(c))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("compiler service not configured")
	}

	gates := compilecmd.FeatureGates{CommandsEnabled: func() bool { return true }}

	var findings []interfaces.ContentError
	sink := func(_ context.Context, found []interfaces.ContentError) {
		findings = found
	}

	handler := compilecmd.NewLintCorpusHandler(module.Service, module.Logger, gates, sink)
	if err := handler.Execute(c.Context, compilecmd.LintCorpusCommand{
		Directory: c.String("content-dir"),
		Patterns:  patternList(c),
	}); err != nil {
		return fmt.Errorf("execute lint command: %w", err)
	}

	var report strings.Builder
	renderFindings(&report, findings)
	if err := writeOutput(c, []byte(report.String())); err != nil {
		return err
	}
	if len(findings) > 0 {
		return fmt.Errorf("lint: %d finding(s)", len(findings))
	}
	return nil
}

func buildOptions(c *cli.Context) bootstrap.Options {
	return bootstrap.Options{
		ContentDir:     c.String("content-dir"),
		Pattern:        c.String("pattern"),
		Workers:        c.Int("workers"),
		DefaultTier:    c.String("default-tier"),
		TierPrecedence: c.String("tier-precedence"),
		LogLevel:       c.String("log-level"),
		RenderHTML:     c.Bool("render-html"),
	}
}

func patternList(c *cli.Context) []string {
	if trimmed := strings.TrimSpace(c.String("pattern")); trimmed != "" {
		return []string{trimmed}
	}
	return nil
}

// renderFindings writes one line per finding plus a closing summary. Findings
// arrive sorted by file then line, so the report is stable across runs.
func renderFindings(w io.Writer, findings []interfaces.ContentError) {
	for _, finding := range findings {
		if finding.Line > 0 {
			fmt.Fprintf(w, "%s:%d: %s: %s\n", finding.File, finding.Line, finding.Severity, finding.Message)
		} else {
			fmt.Fprintf(w, "%s: %s: %s\n", finding.File, finding.Severity, finding.Message)
		}
		if finding.Suggestion != "" {
			fmt.Fprintf(w, "\tsuggestion: %s\n", finding.Suggestion)
		}
	}
	if len(findings) == 0 {
		fmt.Fprintln(w, "no findings")
		return
	}
	fmt.Fprintf(w, "%d finding(s)\n", len(findings))
}

func writeOutput(c *cli.Context, data []byte) error {
	if path := strings.TrimSpace(c.String("output")); path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	_, err := c.App.Writer.Write(data)
	return err
}
