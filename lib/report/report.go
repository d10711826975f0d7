package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vyPal/tacc/lib/analyzer"
	"github.com/vyPal/tacc/lib/ast"
	"github.com/vyPal/tacc/lib/diag"
)

const width = 80

// Reporter renders an analysis result for a human or as JSON.
type Reporter struct {
	output io.Writer
	json   bool

	header     *color.Color
	bad        *color.Color
	warn       *color.Color
	good       *color.Color
	ShowTokens bool
}

func NewReporter(output io.Writer, jsonOutput bool) *Reporter {
	return &Reporter{
		output: output,
		json:   jsonOutput,
		header: color.New(color.FgCyan, color.Bold),
		bad:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow),
		good:   color.New(color.FgGreen, color.Bold),
	}
}

func (r *Reporter) Report(res *analyzer.Result) error {
	if r.json {
		return r.reportJSON(res)
	}
	return r.reportConsole(res)
}

// Fatal renders a lexical or syntax error that aborted the run.
func (r *Reporter) Fatal(err error) error {
	if r.json {
		enc := json.NewEncoder(r.output)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{"fatal": err.Error()})
	}
	r.bad.Fprintf(r.output, "ERROR: %s\n", err)
	return nil
}

func (r *Reporter) banner(title string) {
	fmt.Fprintln(r.output, strings.Repeat("=", width))
	pad := (width - len(title) - 2) / 2
	if pad < 0 {
		pad = 0
	}
	r.header.Fprintf(r.output, "%s %s %s\n", strings.Repeat("=", pad), title, strings.Repeat("=", width-pad-len(title)-2))
	fmt.Fprintln(r.output, strings.Repeat("=", width))
}

func (r *Reporter) reportConsole(res *analyzer.Result) error {
	w := r.output
	if r.ShowTokens {
		fmt.Fprintf(w, "Tokens: %d\n", len(res.Tokens))
		for _, tok := range res.Tokens {
			fmt.Fprintf(w, "  %s\n", tok)
		}
	}

	if res.Failed() {
		r.bad.Fprintln(w, "ANALYSIS FAILED - semantic errors found")
		r.banner("SEMANTIC ERRORS")
		for _, d := range res.Errors {
			r.bad.Fprintf(w, "x %s\n", d)
		}
	} else {
		r.good.Fprintln(w, "ANALYSIS SUCCEEDED")
		r.symbols(res)

		r.banner("DECORATED AST")
		ast.Print(w, res.Program)

		r.banner("THREE-ADDRESS CODE")
		if len(res.Code) == 0 {
			fmt.Fprintln(w, "(no code generated)")
		} else {
			fmt.Fprintln(w, res.CodeText)
		}

		fmt.Fprintln(w, "AST statistics:")
		fmt.Fprintf(w, "  - total nodes: %d\n", ast.Count(res.Program))
		fmt.Fprintf(w, "  - max depth:   %d\n", ast.Depth(res.Program))
	}

	if len(res.Warnings) > 0 {
		r.banner("WARNINGS")
		for _, d := range res.Warnings {
			r.warn.Fprintf(w, "! %s\n", d)
		}
	}
	return nil
}

func (r *Reporter) symbols(res *analyzer.Result) {
	r.banner("SYMBOL TABLE")
	fmt.Fprintf(r.output, "%-10s %-8s %-8s %-6s %-10s %-5s\n", "Name", "Type", "Scope", "Line", "Value", "Used")
	fmt.Fprintln(r.output, strings.Repeat("-", width))
	for _, s := range res.Symbols {
		used := "no"
		if s.Used {
			used = "yes"
		}
		fmt.Fprintf(r.output, "%-10s %-8s %-8d %-6d %-10s %-5s\n", s.Name, s.Type, s.ScopeLevel, s.DeclLine, s.Value, used)
	}
}

type jsonSymbol struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Scope int     `json:"scope"`
	Line  int     `json:"line"`
	Value *string `json:"value"`
	Used  bool    `json:"used"`
}

type jsonNode struct {
	Label    string     `json:"label"`
	Type     string     `json:"type,omitempty"`
	Value    *string    `json:"value,omitempty"`
	Place    string     `json:"place,omitempty"`
	Line     int        `json:"line"`
	Children []jsonNode `json:"children,omitempty"`
}

type jsonStats struct {
	Nodes int `json:"nodes"`
	Depth int `json:"depth"`
}

type jsonReport struct {
	Failed   bool              `json:"failed"`
	Tokens   int               `json:"tokens"`
	Symbols  []jsonSymbol      `json:"symbols"`
	AST      jsonNode          `json:"ast"`
	Code     []string          `json:"code"`
	Stats    jsonStats         `json:"stats"`
	Errors   []diag.Diagnostic `json:"errors"`
	Warnings []diag.Diagnostic `json:"warnings"`
}

func toJSONNode(n ast.Node) jsonNode {
	a := n.Attr()
	out := jsonNode{Label: n.Label(), Type: a.Type.Name(), Place: a.Place, Line: a.Line}
	if a.Value.Known() {
		s := a.Value.String()
		out.Value = &s
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, toJSONNode(c))
	}
	return out
}

func (r *Reporter) reportJSON(res *analyzer.Result) error {
	rep := jsonReport{
		Failed:   res.Failed(),
		Tokens:   len(res.Tokens),
		Symbols:  []jsonSymbol{},
		AST:      toJSONNode(res.Program),
		Code:     res.Code,
		Stats:    jsonStats{Nodes: ast.Count(res.Program), Depth: ast.Depth(res.Program)},
		Errors:   res.Errors,
		Warnings: res.Warnings,
	}
	for _, s := range res.Symbols {
		js := jsonSymbol{Name: s.Name, Type: s.Type.Name(), Scope: s.ScopeLevel, Line: s.DeclLine, Used: s.Used}
		if s.Value.Known() {
			v := s.Value.String()
			js.Value = &v
		}
		rep.Symbols = append(rep.Symbols, js)
	}
	if rep.Code == nil {
		rep.Code = []string{}
	}
	if rep.Errors == nil {
		rep.Errors = []diag.Diagnostic{}
	}
	if rep.Warnings == nil {
		rep.Warnings = []diag.Diagnostic{}
	}

	enc := json.NewEncoder(r.output)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
