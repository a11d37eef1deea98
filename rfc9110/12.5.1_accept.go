package rfc9110

import (
	"strings"
)

// § 12.5.1.  Accept
// §
// §    The "Accept" header field can be used by user agents to specify
// §    their preferences regarding response media types.
// §
// §      Accept = #( media-range [ weight ] )
// §
// §      media-range    = ( "*/*"
// §                         / ( type "/" "*" )
// §                         / ( type "/" subtype )
// §                       ) parameters
// §
// §    The asterisk "*" character is used to group media types into ranges,
// §    with "*/*" indicating all media types and "type/*" indicating all
// §    subtypes of that type.  The media-range can include media type
// §    parameters that are applicable to that range.
// §
// §    Media ranges can be overridden by more specific media ranges or
// §    specific media types.  If more than one media range applies to a
// §    given type, the most specific reference has precedence.

type mediaRange struct {
	mainType string
	subType  string
	params   map[string]string
	q        float64
	order    int
}

// parseMediaRange parses one media range, e.g. "text/*;level=1".
// A bare "*" is accepted as shorthand for "*/*".
func parseMediaRange(element string, order int) (mediaRange, bool) {
	value, params := splitParameters(element)
	q, ok := weight(params)
	if !ok {
		return mediaRange{}, false
	}
	if value == "*" {
		value = "*/*"
	}
	mainType, subType, found := strings.Cut(value, "/")
	if !found || mainType == "" || subType == "" {
		return mediaRange{}, false
	}
	r := mediaRange{
		mainType: strings.ToLower(mainType),
		subType:  strings.ToLower(subType),
		q:        q,
		order:    order,
	}
	for _, p := range params {
		name, val, _ := strings.Cut(p, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "q" {
			break
		}
		r.params = setParam(r.params, name, strings.TrimSpace(val))
	}
	return r, true
}

func setParam(params map[string]string, name, value string) map[string]string {
	if params == nil {
		params = make(map[string]string, 2)
	}
	params[name] = strings.Trim(value, `"`)
	return params
}

func parseAccept(header string) []mediaRange {
	elements := splitListHeader(header)
	ranges := make([]mediaRange, 0, len(elements))
	for i, e := range elements {
		if r, ok := parseMediaRange(e, i); ok {
			ranges = append(ranges, r)
		}
	}
	return ranges
}

// matchMediaRange reports whether a range accepts an offered media type,
// and with what specificity. Specificity counts an exact type (4), an
// exact subtype (2) and a full parameter match (1); a wildcard or absent
// constraint contributes nothing.
func matchMediaRange(r mediaRange, offer mediaRange) (int, bool) {
	spec := 0
	switch {
	case r.mainType == offer.mainType:
		spec |= 4
	case r.mainType != "*":
		return 0, false
	}
	switch {
	case r.subType == offer.subType:
		spec |= 2
	case r.subType != "*":
		return 0, false
	}
	if len(r.params) > 0 {
		for name, value := range r.params {
			if !strings.EqualFold(offer.params[name], value) {
				return 0, false
			}
		}
		spec |= 1
	}
	return spec, true
}

// MediaTypes negotiates the Accept header field.
//
// With offers, it returns the offered media types the field value
// accepts, best first. With nil offers, it returns every media range in
// the field value with a positive weight, best first. Offers must be
// full media types; an unparsable offer is never acceptable.
func MediaTypes(header string, offers []string) []string {
	ranges := parseAccept(header)

	if offers == nil {
		all := make([]matched, 0, len(ranges))
		for _, r := range ranges {
			all = append(all, matched{
				offer: r.mainType + "/" + r.subType,
				q:     r.q,
				order: r.order,
			})
		}
		return rank(all)
	}

	matches := make([]matched, 0, len(offers))
	for i, offer := range offers {
		parsed, ok := parseMediaRange(offer, 0)
		if !ok || parsed.mainType == "*" || parsed.subType == "*" {
			continue
		}
		best := matched{offer: offer, spec: -1, index: i}
		for _, r := range ranges {
			spec, ok := matchMediaRange(r, parsed)
			if !ok {
				continue
			}
			// the most specific reference has precedence
			if spec > best.spec || (spec == best.spec && r.q > best.q) {
				best.spec, best.q, best.order = spec, r.q, r.order
			}
		}
		if best.spec >= 0 {
			matches = append(matches, best)
		}
	}
	return rank(matches)
}
