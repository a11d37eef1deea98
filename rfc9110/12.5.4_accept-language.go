package rfc9110

import (
	"strings"
)

// § 12.5.4.  Accept-Language
// §
// §    The "Accept-Language" header field can be used by user agents to
// §    indicate the set of natural languages that are preferred in the
// §    response.
// §
// §      Accept-Language = #( language-range [ weight ] )
// §      language-range  = <language-range, see [RFC4647], Section 2.1>
// §
// §    Each language-range can be given an associated quality value
// §    representing an estimate of the user's preference for the languages
// §    specified by that range.
//
// Matching follows the Basic Filtering scheme of RFC 4647, section 3.3.1:
// a range matches a tag if it exactly equals the tag or is a prefix of it
// followed by "-"; the range "*" matches everything.

func parseAcceptLanguage(header string) []accepted {
	elements := splitListHeader(header)
	languages := make([]accepted, 0, len(elements))
	for i, e := range elements {
		value, params := splitParameters(e)
		q, ok := weight(params)
		if !ok || value == "" {
			continue
		}
		languages = append(languages, accepted{
			value: strings.ToLower(value),
			q:     q,
			order: i,
		})
	}
	return languages
}

// matchLanguage reports whether a range accepts a tag and with what
// specificity: exact match (4), range is a prefix of the tag (2), tag is
// a prefix of the range (1), wildcard (0).
func matchLanguage(lrange, tag string) (int, bool) {
	switch {
	case lrange == tag:
		return 4, true
	case strings.HasPrefix(tag, lrange+"-"):
		return 2, true
	case strings.HasPrefix(lrange, tag+"-"):
		return 1, true
	case lrange == "*":
		return 0, true
	}
	return 0, false
}

// Languages negotiates the Accept-Language header field.
//
// With offers, it returns the offered language tags the field value
// accepts, best first. With nil offers, it returns every language range
// in the field value with a positive weight, best first.
func Languages(header string, offers []string) []string {
	languages := parseAcceptLanguage(header)

	if offers == nil {
		all := make([]matched, 0, len(languages))
		for _, l := range languages {
			all = append(all, matched{offer: l.value, q: l.q, order: l.order})
		}
		return rank(all)
	}

	matches := make([]matched, 0, len(offers))
	for i, offer := range offers {
		lowered := strings.ToLower(offer)
		best := matched{offer: offer, spec: -1, index: i}
		for _, l := range languages {
			spec, ok := matchLanguage(l.value, lowered)
			if !ok {
				continue
			}
			if spec > best.spec || (spec == best.spec && l.q > best.q) {
				best.spec, best.q, best.order = spec, l.q, l.order
			}
		}
		if best.spec >= 0 {
			matches = append(matches, best)
		}
	}
	return rank(matches)
}
