// Package rfc9110 implements proactive content negotiation as defined in
// RFC 9110, section 12. It covers the four negotiation request header
// fields (Accept, Accept-Charset, Accept-Encoding and Accept-Language)
// and the shared quality-value weighting they use.
//
// Each entry point takes the raw field value and an ordered list of
// offers, and returns the offers the client accepts, best first. Called
// with nil offers, it instead returns everything the field value accepts,
// best first. Ties are broken by offer order (offers given) or field
// order (no offers). Malformed list elements are skipped, never an error.
//
// Callers that want "no header sent means anything goes" semantics pass
// "*" for an absent header; an empty string means nothing is acceptable
// (except identity, for Accept-Encoding).
package rfc9110

import (
	"sort"
	"strings"
)

// § 12.5.  Content Negotiation Fields
// §
// §    The following request header fields are sent by a user agent to
// §    engage in proactive negotiation of the response content, as defined
// §    in Section 12.1.  The preferences sent in these fields apply to any
// §    content in the response, including representations of the target
// §    resource, representations of error or processing status, and
// §    potentially even the miscellaneous text strings that might appear
// §    within the protocol.

// accepted is one parsed element of a negotiation field value,
// together with its resolved weight and position.
type accepted struct {
	value string
	q     float64
	order int
}

// matched pairs an offer with the weight and specificity of the
// best field element accepting it.
type matched struct {
	offer string
	q     float64
	spec  int
	order int
	index int
}

// splitListHeader splits a comma-separated field value into its elements,
// honoring quoted strings. Empty elements are dropped.
func splitListHeader(header string) []string {
	elements := make([]string, 0, 4)
	var sb strings.Builder
	inQuotes := false
	for i := 0; i < len(header); i++ {
		c := header[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			sb.WriteByte(c)
		case c == '\\' && inQuotes && i+1 < len(header):
			sb.WriteByte(c)
			i++
			sb.WriteByte(header[i])
		case c == ',' && !inQuotes:
			if e := strings.TrimSpace(sb.String()); e != "" {
				elements = append(elements, e)
			}
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	if e := strings.TrimSpace(sb.String()); e != "" {
		elements = append(elements, e)
	}
	return elements
}

// splitParameters splits one list element into its value and its
// semicolon-separated parameters.
func splitParameters(element string) (string, []string) {
	parts := strings.Split(element, ";")
	params := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return strings.TrimSpace(parts[0]), params
}

// rank orders matches best first: weight, then specificity, then field
// order, then offer order. Only matches with a positive weight survive.
func rank(matches []matched) []string {
	kept := make([]matched, 0, len(matches))
	for _, m := range matches {
		if m.q > 0 {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return better(kept[i], kept[j])
	})
	ranked := make([]string, len(kept))
	for i, m := range kept {
		ranked[i] = m.offer
	}
	return ranked
}

func better(a, b matched) bool {
	if a.q != b.q {
		return a.q > b.q
	}
	if a.spec != b.spec {
		return a.spec > b.spec
	}
	if a.order != b.order {
		return a.order < b.order
	}
	return a.index < b.index
}
