package extract

import (
	"strings"

	"github.com/importscout/importscout/pkg/importmodel"
)

// statement is one logical statement reconstructed from physical lines,
// comment-stripped and continuation-joined.
type statement struct {
	text   string
	span   importmodel.Span
	indent int
}

// joiner walks physical lines and yields logical statements. Bracketed
// groups and escaped continuations merge into one statement; everything
// else passes through line by line so joining never crosses an unrelated
// statement boundary.
type joiner struct {
	g     Grammar
	lines []string
	idx   int // next physical line, 0-based

	inBlockComment bool

	// Per-spec group mode (Go import blocks): each member line becomes
	// its own logical statement.
	inGroup    bool
	groupStart int
}

func newJoiner(g Grammar, source string) *joiner {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	// A trailing newline does not open a final physical line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return &joiner{g: g, lines: lines}
}

// next returns the following logical statement. A nil statement with a
// non-nil diagnostic reports a discarded construct; scanning continues while
// more is true.
func (j *joiner) next() (*statement, *importmodel.Diagnostic, bool) {
	for j.idx < len(j.lines) {
		raw := j.lines[j.idx]
		j.idx++
		lineNo := j.idx

		stripped, still := stripComments(raw, j.g, j.inBlockComment)
		j.inBlockComment = still

		trimmed := strings.TrimSpace(stripped)
		if trimmed == "" {
			continue
		}

		if j.inGroup {
			if strings.HasPrefix(trimmed, j.g.GroupClose) {
				j.inGroup = false

				continue
			}

			return &statement{
				text:   j.g.ImportKeyword + " " + trimmed,
				span:   importmodel.Span{Start: lineNo, End: lineNo},
				indent: indentWidth(raw),
			}, nil, true
		}

		indent := indentWidth(raw)

		isImport := startsWithWord(trimmed, j.g.ImportKeyword) ||
			(j.g.FromKeyword != "" && startsWithWord(trimmed, j.g.FromKeyword))
		if !isImport {
			return &statement{
				text:   trimmed,
				span:   importmodel.Span{Start: lineNo, End: lineNo},
				indent: indent,
			}, nil, true
		}

		if j.g.GroupPerSpec && startsWithWord(trimmed, j.g.ImportKeyword) {
			rest := strings.TrimSpace(trimmed[len(j.g.ImportKeyword):])
			if strings.HasPrefix(rest, j.g.GroupOpen) {
				if st, handled := j.sameLineGroup(rest, lineNo, indent); handled {
					if st == nil {
						continue
					}

					return st, nil, true
				}

				j.inGroup = true
				j.groupStart = lineNo

				continue
			}
		}

		return j.joinFrom(trimmed, lineNo, indent)
	}

	if j.inGroup {
		diag := &importmodel.Diagnostic{
			Kind:    importmodel.DiagUnterminatedGroup,
			Span:    importmodel.Span{Start: j.groupStart, End: len(j.lines)},
			Message: "import group never closed before end of file",
		}
		j.inGroup = false

		return nil, diag, false
	}

	return nil, nil, false
}

// sameLineGroup handles a per-spec group that opens and closes on one line.
// The second return is false when the group stays open.
func (j *joiner) sameLineGroup(rest string, lineNo, indent int) (*statement, bool) {
	closeIdx := strings.Index(rest, j.g.GroupClose)
	if closeIdx < 0 {
		return nil, false
	}

	inner := strings.TrimSpace(rest[len(j.g.GroupOpen):closeIdx])
	if inner == "" {
		return nil, true
	}

	return &statement{
		text:   j.g.ImportKeyword + " " + inner,
		span:   importmodel.Span{Start: lineNo, End: lineNo},
		indent: indent,
	}, true
}

// joinFrom merges continuation lines into the import statement that starts
// with trimmed at lineNo.
func (j *joiner) joinFrom(trimmed string, lineNo, indent int) (*statement, *importmodel.Diagnostic, bool) {
	depth := bracketDelta(trimmed, j.g)
	text, cont := trimContinuation(trimmed, j.g)
	parts := []string{text}
	endLine := lineNo

	for depth > 0 || cont {
		if j.idx >= len(j.lines) {
			if depth > 0 {
				return nil, &importmodel.Diagnostic{
					Kind:    importmodel.DiagUnterminatedGroup,
					Span:    importmodel.Span{Start: lineNo, End: len(j.lines)},
					Message: "import group never closed before end of file",
				}, false
			}

			break
		}

		nraw := j.lines[j.idx]

		nstripped, still := stripComments(nraw, j.g, j.inBlockComment)
		ntrimmed := strings.TrimSpace(nstripped)

		// A fresh import or guard statement at the same or shallower
		// indent means the open group was never closed. Leave the line
		// for the next scan pass.
		if depth > 0 && ntrimmed != "" && indentWidth(nraw) <= indent && startsNewStatement(ntrimmed, j.g) {
			return nil, &importmodel.Diagnostic{
				Kind:    importmodel.DiagUnterminatedGroup,
				Span:    importmodel.Span{Start: lineNo, End: endLine},
				Message: "import group never closed",
			}, true
		}

		j.idx++
		j.inBlockComment = still
		endLine = j.idx

		if ntrimmed == "" {
			cont = false

			continue
		}

		depth += bracketDelta(ntrimmed, j.g)

		var piece string
		piece, cont = trimContinuation(ntrimmed, j.g)
		parts = append(parts, piece)
	}

	return &statement{
		text:   strings.Join(parts, " "),
		span:   importmodel.Span{Start: lineNo, End: endLine},
		indent: indent,
	}, nil, true
}

// bracketDelta counts group opens minus closes in a comment-stripped line.
func bracketDelta(s string, g Grammar) int {
	if g.GroupOpen == "" {
		return 0
	}

	return strings.Count(s, g.GroupOpen) - strings.Count(s, g.GroupClose)
}

// trimContinuation strips a trailing continuation escape and reports
// whether one was present.
func trimContinuation(s string, g Grammar) (string, bool) {
	if g.ContinuationEscape == "" || !strings.HasSuffix(s, g.ContinuationEscape) {
		return s, false
	}

	return strings.TrimSpace(strings.TrimSuffix(s, g.ContinuationEscape)), true
}

// startsNewStatement reports whether a line opens a construct that cannot
// appear inside a bracketed group.
func startsNewStatement(trimmed string, g Grammar) bool {
	if startsWithWord(trimmed, g.ImportKeyword) {
		return true
	}

	if g.FromKeyword != "" && startsWithWord(trimmed, g.FromKeyword) {
		return true
	}

	if g.GuardKeyword != "" && startsWithWord(trimmed, g.GuardKeyword) {
		return true
	}

	return false
}

// startsWithWord reports whether s begins with the keyword followed by a
// non-identifier boundary.
func startsWithWord(s, keyword string) bool {
	if keyword == "" || !strings.HasPrefix(s, keyword) {
		return false
	}

	if len(s) == len(keyword) {
		return true
	}

	return !isIdentChar(rune(s[len(keyword)]))
}

func isIdentChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}

// indentWidth counts leading whitespace characters of a raw physical line.
func indentWidth(raw string) int {
	n := 0

	for _, r := range raw {
		if r != ' ' && r != '\t' {
			break
		}

		n++
	}

	return n
}

// stripComments removes line and block comments from one physical line while
// respecting string literals. It returns the cleaned text and whether a
// block comment remains open at end of line.
func stripComments(line string, g Grammar, inBlock bool) (string, bool) {
	var out strings.Builder

	i := 0

	if inBlock {
		closeIdx := strings.Index(line, g.BlockCommentClose)
		if closeIdx < 0 {
			return "", true
		}

		i = closeIdx + len(g.BlockCommentClose)
	}

	var quote byte

	for i < len(line) {
		c := line[i]

		if quote != 0 {
			if c == '\\' && i+1 < len(line) {
				out.WriteByte(c)
				out.WriteByte(line[i+1])
				i += 2

				continue
			}

			if c == quote {
				quote = 0
			}

			out.WriteByte(c)
			i++

			continue
		}

		if g.BlockCommentOpen != "" && strings.HasPrefix(line[i:], g.BlockCommentOpen) {
			closeIdx := strings.Index(line[i+len(g.BlockCommentOpen):], g.BlockCommentClose)
			if closeIdx < 0 {
				return out.String(), true
			}

			out.WriteByte(' ')
			i += len(g.BlockCommentOpen) + closeIdx + len(g.BlockCommentClose)

			continue
		}

		if g.LineComment != "" && strings.HasPrefix(line[i:], g.LineComment) {
			break
		}

		if c == '"' || c == '\'' || c == '`' {
			quote = c
		}

		out.WriteByte(c)
		i++
	}

	return out.String(), false
}
