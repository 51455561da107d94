package teller

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReaderPrompter prompts on w and reads one line per prompt from r. The
// console loop and the transaction handlers share it so there is a single
// buffered reader over stdin.
type ReaderPrompter struct {
	r *bufio.Reader
	w io.Writer
}

var (
	_ Prompter = (*ReaderPrompter)(nil)
)

func NewReaderPrompter(r io.Reader, w io.Writer) *ReaderPrompter {
	return &ReaderPrompter{
		r: bufio.NewReader(r),
		w: w,
	}
}

func (p *ReaderPrompter) Prompt(label string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", label)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
