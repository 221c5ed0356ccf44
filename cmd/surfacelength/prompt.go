package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/twpayne/go-surfacelength"
)

var errSyntax = errors.New("syntax error")

// A prompter asks questions on w and reads answers, one per line, from r.
type prompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{
		scanner: bufio.NewScanner(r),
		w:       w,
	}
}

// prompt writes question and returns the next non-empty line of input.
func (p *prompter) prompt(question string) (string, error) {
	p.println(question)
	for p.scanner.Scan() {
		if line := strings.TrimSpace(p.scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := p.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (p *prompter) println(s string) {
	fmt.Fprintln(p.w, s)
}

// parseCoord parses a coordinate written as "x y" or "x,y".
func parseCoord(s string) (surfacelength.Coord, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 2 {
		return surfacelength.Coord{}, fmt.Errorf("%q: %w", s, errSyntax)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return surfacelength.Coord{}, err
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return surfacelength.Coord{}, err
	}
	return surfacelength.Coord{X: x, Y: y}, nil
}
