package rfc9110

import (
	"strings"
)

// § 12.5.3.  Accept-Encoding
// §
// §    The "Accept-Encoding" header field can be used to indicate
// §    preferences regarding the use of content codings (Section 8.4.1).
// §
// §      Accept-Encoding  = #( codings [ weight ] )
// §      codings          = content-coding / "identity" / "*"
// §
// §    Each codings value MAY be given an associated quality value (weight)
// §    representing the preference for that encoding.  The asterisk "*"
// §    symbol in an Accept-Encoding field matches any available content
// §    coding not explicitly listed in the field.
// §
// §    An Accept-Encoding header field with a field value that is empty
// §    implies that the user agent does not want any content coding in
// §    response.
// §
// §    ... the "identity" token is used as a synonym for "no encoding" in
// §    order to communicate when no encoding is preferred.

// parseAcceptEncoding parses the field value, synthesizing an "identity"
// element when the field does not mention it. The synthesized element
// carries the minimum weight appearing in the field, so "*;q=0" still
// refuses identity while any positive field leaves it as a last resort.
func parseAcceptEncoding(header string) []accepted {
	elements := splitListHeader(header)
	codings := make([]accepted, 0, len(elements)+1)
	hasIdentity := false
	minQ := 1.0
	for i, e := range elements {
		value, params := splitParameters(e)
		q, ok := weight(params)
		if !ok || value == "" {
			continue
		}
		value = strings.ToLower(value)
		if value == "identity" {
			hasIdentity = true
		}
		if q < minQ {
			minQ = q
		}
		codings = append(codings, accepted{value: value, q: q, order: i})
	}
	if !hasIdentity {
		codings = append(codings, accepted{value: "identity", q: minQ, order: len(elements)})
	}
	return codings
}

// Encodings negotiates the Accept-Encoding header field.
//
// With offers, it returns the offered content codings the field value
// accepts, best first. With nil offers, it returns every coding in the
// field value with a positive weight, best first, with "identity"
// included unless the field refuses it. An absent header is negotiated
// the same way as an empty one: only identity is acceptable.
func Encodings(header string, offers []string) []string {
	codings := parseAcceptEncoding(header)

	if offers == nil {
		all := make([]matched, 0, len(codings))
		for _, c := range codings {
			all = append(all, matched{offer: c.value, q: c.q, order: c.order})
		}
		return rank(all)
	}

	matches := make([]matched, 0, len(offers))
	for i, offer := range offers {
		lowered := strings.ToLower(offer)
		best := matched{offer: offer, spec: -1, index: i}
		for _, c := range codings {
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
