package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/sanity-io/litter"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tacc/lib/analyzer"
	"github.com/vyPal/tacc/lib/ast"
	"github.com/vyPal/tacc/lib/compiler"
	taclex "github.com/vyPal/tacc/lib/lexer"
	"github.com/vyPal/tacc/lib/project"
	"github.com/vyPal/tacc/lib/report"
)

var logger = log.New(io.Discard, "[tacc] ", log.Ltime)

func setupLogging(verbose bool) {
	if verbose {
		logger.SetOutput(os.Stderr)
	}
}

var sourceFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Usage:   "The path to the config file. ",
		Aliases: []string{"c"},
	},
	&cli.StringFlag{
		Name:    "input-str",
		Aliases: []string{"s"},
		Usage:   "Analyze a string instead of a file",
	},
}

func init() {
	commands = append(commands, &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze a source file and print symbols, decorated AST and three-address code",
		Category:  "analysis",
		ArgsUsage: "[file]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Print the report as JSON",
			},
			&cli.BoolFlag{
				Name:    "tokens",
				Aliases: []string{"t"},
				Usage:   "Include the token stream in the report",
			},
			&cli.BoolFlag{
				Name:  "no-unused-globals",
				Usage: "Don't warn about unused variables of the global scope",
			},
			&cli.BoolFlag{
				Name:    "llvm",
				Aliases: []string{"l"},
				Usage:   "Also write LLVM IR when the analysis succeeds",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "The file LLVM IR is written to",
			},
		}, sourceFlags...),
		Action: analyze,
	},
		&cli.Command{
			Name:      "tokens",
			Usage:     "Print the token stream of a source file",
			Category:  "analysis",
			ArgsUsage: "[file]",
			Flags:     sourceFlags,
			Action:    tokens,
		},
		&cli.Command{
			Name:      "ast",
			Usage:     "Print the decorated AST of a source file",
			Category:  "analysis",
			ArgsUsage: "[file]",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:    "dump",
					Aliases: []string{"d"},
					Usage:   "Dump the raw node structs instead of the tree",
				},
			}, sourceFlags...),
			Action: dumpAST,
		},
		&cli.Command{
			Name:      "llvm",
			Usage:     "Lower a source file to LLVM IR",
			Category:  "compile",
			ArgsUsage: "[file]",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "The file to write, stdout when empty",
				},
				&cli.BoolFlag{
					Name:    "print-globals",
					Aliases: []string{"p"},
					Usage:   "Make main print every global variable before returning",
				},
			}, sourceFlags...),
			Action: llvm,
		},
	)
}

type source struct {
	filename string
	text     string
	conf     project.TacConf
}

// loadSource picks the input in order: --input-str, the file argument, then
// the main file named by tacconf.yaml.
func loadSource(c *cli.Context) (source, error) {
	var src source
	src.conf.CreateDefault("")

	confDir := c.String("config")
	if confDir != "" || (c.String("input-str") == "" && c.Args().First() == "") {
		if confDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return src, cli.Exit(color.RedString("Error getting current working directory: %s", err), 1)
			}
			confDir = cwd
		}
		if filepath.Base(confDir) == project.FileName {
			confDir = filepath.Dir(confDir)
		}
		conf, err := project.Load(confDir)
		if err != nil {
			return src, cli.Exit(color.RedString("Error reading %s: %s", project.FileName, err), 1)
		}
		src.conf = conf
		if src.conf.Main != "" && !filepath.IsAbs(src.conf.Main) {
			src.conf.Main = filepath.Join(confDir, src.conf.Main)
		}
	}

	if s := c.String("input-str"); s != "" {
		src.filename = "<input>"
		src.text = s
		return src, nil
	}

	filename := c.Args().First()
	if filename == "" {
		filename = src.conf.Main
	}
	if filename == "" {
		return src, cli.Exit(color.RedString("Error: No file specified"), 1)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return src, cli.Exit(color.RedString("Error reading %s: %s", filename, err), 1)
	}
	src.filename = filename
	src.text = string(data)
	return src, nil
}

func runAnalysis(src source, opts analyzer.Options) (*analyzer.Result, error) {
	start := time.Now()
	logger.Printf("analyzing %s (%d bytes)", src.filename, len(src.text))
	res, err := analyzer.Analyze(src.filename, src.text, opts)
	if err != nil {
		logger.Printf("analysis aborted: %v", err)
		return nil, err
	}
	logger.Printf("analysis finished in %s: %d instructions, %d errors, %d warnings",
		time.Since(start), len(res.Code), len(res.Errors), len(res.Warnings))
	return res, nil
}

func analyze(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}

	opts := analyzer.Options{
		SkipUnusedGlobals: c.Bool("no-unused-globals") || !src.conf.Analysis.WarnGlobals(),
	}
	jsonOut := c.Bool("json") || src.conf.Report.Format == "json"
	if src.conf.Report.NoColor {
		color.NoColor = true
	}

	rep := report.NewReporter(os.Stdout, jsonOut)
	rep.ShowTokens = c.Bool("tokens") || src.conf.Report.Tokens

	res, err := runAnalysis(src, opts)
	if err != nil {
		if rerr := rep.Fatal(err); rerr != nil {
			return rerr
		}
		return cli.Exit("", 1)
	}
	if err := rep.Report(res); err != nil {
		return err
	}
	if res.Failed() {
		return cli.Exit("", 1)
	}

	if c.Bool("llvm") || src.conf.Compiler.EmitLLVM {
		out := c.String("output")
		if out == "" {
			out = src.conf.Compiler.Output
		}
		return writeLLVM(res, out, src.conf.Compiler.PrintGlobals)
	}
	return nil
}

func writeLLVM(res *analyzer.Result, out string, printGlobals bool) error {
	comp := compiler.NewCompiler()
	comp.PrintGlobals = printGlobals
	if err := comp.Compile(res.Program); err != nil {
		return cli.Exit(color.RedString("Error compiling: %s", err), 1)
	}
	if out == "" {
		_, err := fmt.Fprint(os.Stdout, comp.String())
		return err
	}
	if err := os.WriteFile(out, []byte(comp.String()), 0644); err != nil {
		return cli.Exit(color.RedString("Error writing %s: %s", out, err), 1)
	}
	logger.Printf("wrote %s", out)
	return nil
}

func tokens(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	toks, err := taclex.TokenizeString(src.filename, src.text)
	if err != nil {
		return cli.Exit(color.RedString("%s", err), 1)
	}
	for _, tok := range toks {
		fmt.Printf("%-4d %-7s %s\n", tok.Line, tok.Kind, tok.Lexeme)
	}
	return nil
}

func dumpAST(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	res, err := runAnalysis(src, analyzer.Options{SkipUnusedGlobals: true})
	if err != nil {
		return cli.Exit(color.RedString("%s", err), 1)
	}
	if c.Bool("dump") {
		litter.Dump(res.Program)
		return nil
	}
	ast.Print(os.Stdout, res.Program)
	return nil
}

func llvm(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	res, err := runAnalysis(src, analyzer.Options{SkipUnusedGlobals: true})
	if err != nil {
		return cli.Exit(color.RedString("%s", err), 1)
	}
	if res.Failed() {
		for _, d := range res.Errors {
			color.Red("%s", d)
		}
		return cli.Exit(color.RedString("Error: analysis failed, no IR generated"), 1)
	}
	return writeLLVM(res, c.String("output"), c.Bool("print-globals"))
}
