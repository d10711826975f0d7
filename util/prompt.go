package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks questions on Out and reads single-line answers from In.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

var std = NewPrompter(os.Stdin, os.Stdout)

func (p *Prompter) answer() string {
	response, err := p.in.ReadString('\n')
	if err != nil && response == "" {
		return ""
	}
	return strings.TrimSpace(response)
}

// PromptString returns def when the answer is empty or input is closed.
func (p *Prompter) PromptString(prompt string, def string) string {
	fmt.Fprintf(p.out, "%s (%s): ", prompt, def)
	if response := p.answer(); response != "" {
		return response
	}
	return def
}

func (p *Prompter) PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(p.out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(p.out, "%s (y/N): ", prompt)
	}
	response := p.answer()
	if response == "" {
		return def
	}
	return strings.ToLower(response) == "y"
}

func PromptString(prompt string, def string) string {
	return std.PromptString(prompt, def)
}

func PromptYN(prompt string, def bool) bool {
	return std.PromptYN(prompt, def)
}
