// Package prompt provides the small interactive helpers used during a
// provisioning run.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions over one shared buffered reader. A single reader for
// the whole interaction matters: wrapping the raw input in a fresh buffer per
// question would let the first read buffer (and then discard) the lines meant
// for the questions after it, which breaks piped and scripted input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New builds a Prompter reading answers from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question and returns true only on an explicit
// affirmative answer. Empty input and anything else counts as no, which is the
// safe default for questions like overwriting an existing file.
func (p *Prompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	answer, _ := p.in.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Ask asks a free-text question with a fixed default, returned when the user
// supplies empty input.
func (p *Prompter) Ask(question, def string) string {
	fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	answer, _ := p.in.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def
	}
	return answer
}
