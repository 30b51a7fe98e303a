// Package fields recognizes inline "Label: value, value" assertions in
// prose text and reshapes them into a row-oriented table for tabular export.
package fields

import (
	"regexp"
	"strings"
)

// fieldRe captures a label of one or more word tokens, a colon, and a value
// span running to the next semicolon, line break, or end of input. Commas do
// not terminate the span; they delimit values inside it. A consequence is
// that a literal comma can never appear inside a single value.
var fieldRe = regexp.MustCompile(`(\w+(?:[ \t]+\w+)*)[ \t]*:[ \t]*([^;\n]+)`)

// delimRe splits a value span on commas, semicolons, or vertical bars.
var delimRe = regexp.MustCompile(`[,;|]`)

// conjRe is the fallback splitter for spans with no list delimiters:
// a shallow split on the words "and"/"or".
var conjRe = regexp.MustCompile(`(?i)\b(?:and|or)\b`)

// Field is one detected key/value-list occurrence. RawSpan keeps the exact
// matched substring for traceability.
type Field struct {
	Key     string
	Values  []string
	RawSpan string
}

// Extract scans text for field assertions. Absence of matches is a valid
// outcome; Extract never fails. Spans whose value list comes up empty after
// both splitting attempts are discarded.
func Extract(text string) []Field {
	var out []Field
	for _, m := range fieldRe.FindAllStringSubmatch(text, -1) {
		values := splitValues(m[2])
		if len(values) == 0 {
			continue
		}
		out = append(out, Field{
			Key:     strings.TrimSpace(m[1]),
			Values:  values,
			RawSpan: m[0],
		})
	}
	return out
}

// splitValues applies the two-stage splitting policy: delimiters first, then
// a conjunction split when the span holds exactly one value.
func splitValues(span string) []string {
	values := cleanSplit(delimRe.Split(span, -1))
	if len(values) == 1 {
		if conj := cleanSplit(conjRe.Split(span, -1)); len(conj) > 1 {
			return conj
		}
	}
	return values
}

func cleanSplit(pieces []string) []string {
	var out []string
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
