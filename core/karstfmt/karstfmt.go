// core/karstfmt/karstfmt.go
//
// Package karstfmt implements the KarstNSim plain-text exchange schema:
// whitespace-separated columns, one record per line, '#' comments. Writers
// and readers round-trip exactly (floats use shortest %g form).
package karstfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// scanner wraps bufio.Scanner with comment/blank skipping and line-numbered
// errors prefixed by a stream name.
type scanner struct {
	sc   *bufio.Scanner
	name string
	line int
}

func newScanner(r io.Reader, name string) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &scanner{sc: sc, name: name}
}

// maybeNext returns the fields of the next non-blank, non-comment line, or
// ok=false at end of input.
func (s *scanner) maybeNext() ([]string, bool, error) {
	for s.sc.Scan() {
		s.line++
		t := strings.TrimSpace(s.sc.Text())
		if t == "" || t[0] == '#' {
			continue
		}
		return strings.Fields(t), true, nil
	}
	if err := s.sc.Err(); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}

// next is maybeNext for callers that still expect a line.
func (s *scanner) next() ([]string, error) {
	f, ok, err := s.maybeNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s:%d: unexpected end of input", s.name, s.line)
	}
	return f, nil
}

func (s *scanner) errf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", s.name, s.line, fmt.Sprintf(format, args...))
}

func (s *scanner) floats(f []string, n int) ([]float64, error) {
	if len(f) != n {
		return nil, s.errf("bad field count %d (want %d)", len(f), n)
	}
	out := make([]float64, n)
	for i, v := range f {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, s.errf("bad number %q", v)
		}
		out[i] = x
	}
	return out, nil
}

func (s *scanner) ints(f []string, n int) ([]int, error) {
	if len(f) != n {
		return nil, s.errf("bad field count %d (want %d)", len(f), n)
	}
	out := make([]int, n)
	for i, v := range f {
		x, err := strconv.Atoi(v)
		if err != nil {
			return nil, s.errf("bad integer %q", v)
		}
		out[i] = x
	}
	return out, nil
}
