package table

import (
	"bytes"
	"strings"

	"golang.org/x/text/transform"
)

// encoding/csv folds "\r\n" to "\n" even inside quoted cells. crGuard runs
// ahead of the csv reader and swaps each such '\r' for crMarker; restoreCR
// puts it back. A crMarker already present in the input is doubled.
const crMarker = "\ufdd0"

var crMarkerEscaped = []byte(crMarker + crMarker)

// Quote states tracked by crGuard.
const (
	fieldStart = iota
	unquoted
	quoted
	quoteInQuoted
)

type crGuard struct {
	state int
}

func newCRGuard() *crGuard {
	return &crGuard{state: fieldStart}
}

// Reset implements transform.Transformer.
func (g *crGuard) Reset() {
	g.state = fieldStart
}

// Transform implements transform.Transformer.
func (g *crGuard) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	marker := []byte(crMarker)

	for nSrc < len(src) {
		c := src[nSrc]
		out := src[nSrc : nSrc+1]
		size := 1

		switch {
		case c == marker[0]:
			rest := src[nSrc:]
			if !atEOF && len(rest) < len(marker) && bytes.HasPrefix(marker, rest) {
				return nDst, nSrc, transform.ErrShortSrc
			}

			if bytes.HasPrefix(rest, marker) {
				out = crMarkerEscaped
				size = len(marker)
			}
		case c == '\r' && g.state == quoted:
			if nSrc+1 == len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}

			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				out = marker
			}
		}

		if nDst+len(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		nDst += copy(dst[nDst:], out)
		nSrc += size
		g.step(c)
	}

	return nDst, nSrc, nil
}

// step advances the quote state past byte c. It mirrors encoding/csv with
// LazyQuotes: a quote opens a quoted cell only at the start of a field.
func (g *crGuard) step(c byte) {
	switch g.state {
	case fieldStart:
		switch c {
		case '"':
			g.state = quoted
		case ',', '\n':
		default:
			g.state = unquoted
		}
	case unquoted:
		if c == ',' || c == '\n' {
			g.state = fieldStart
		}
	case quoted:
		if c == '"' {
			g.state = quoteInQuoted
		}
	case quoteInQuoted:
		switch c {
		case '"':
			g.state = quoted
		case ',', '\n':
			g.state = fieldStart
		case '\r':
			g.state = unquoted
		default:
			g.state = quoted
		}
	}
}

// restoreCR undoes crGuard in place on the cells of one record.
func restoreCR(record []string) {
	for i, cell := range record {
		if !strings.Contains(cell, crMarker) {
			continue
		}

		var sb strings.Builder

		for {
			before, after, found := strings.Cut(cell, crMarker)
			sb.WriteString(before)

			if !found {
				break
			}

			if rest, ok := strings.CutPrefix(after, crMarker); ok {
				sb.WriteString(crMarker)
				cell = rest
			} else {
				sb.WriteByte('\r')
				cell = after
			}
		}

		record[i] = sb.String()
	}
}
