package rfc9110

import (
	"strings"
)

// § 12.5.2.  Accept-Charset
// §
// §    The "Accept-Charset" header field can be sent by a user agent to
// §    indicate its preferences for charsets in textual response content.
// §
// §      Accept-Charset = #( ( token / "*" ) [ weight ] )
// §
// §    The special value "*", if present in the Accept-Charset header
// §    field, matches every charset that is not mentioned elsewhere in the
// §    field.

func parseAcceptCharset(header string) []accepted {
	elements := splitListHeader(header)
	charsets := make([]accepted, 0, len(elements))
	for i, e := range elements {
		value, params := splitParameters(e)
		q, ok := weight(params)
		if !ok || value == "" {
			continue
		}
		charsets = append(charsets, accepted{
			value: strings.ToLower(value),
			q:     q,
			order: i,
		})
	}
	return charsets
}

// Charsets negotiates the Accept-Charset header field.
//
// With offers, it returns the offered charsets the field value accepts,
// best first. With nil offers, it returns every charset in the field
// value with a positive weight, best first.
func Charsets(header string, offers []string) []string {
	charsets := parseAcceptCharset(header)

	if offers == nil {
		all := make([]matched, 0, len(charsets))
		for _, c := range charsets {
			all = append(all, matched{offer: c.value, q: c.q, order: c.order})
		}
		return rank(all)
	}

	matches := make([]matched, 0, len(offers))
	for i, offer := range offers {
		lowered := strings.ToLower(offer)
		best := matched{offer: offer, spec: -1, index: i}
		for _, c := range charsets {
			spec := 0
			switch c.value {
			case lowered:
				spec = 1
			case "*":
			default:
				continue
			}
			if spec > best.spec || (spec == best.spec && c.q > best.q) {
				best.spec, best.q, best.order = spec, c.q, c.order
			}
		}
		if best.spec >= 0 {
			matches = append(matches, best)
		}
	}
	return rank(matches)
}
