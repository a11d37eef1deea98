package rfc9110

import (
	"strconv"
	"strings"
)

// § 12.4.2.  Quality Values
// §
// §    The content negotiation fields defined by this specification use a
// §    common parameter, named "q" (case-insensitive), to assign a relative
// §    "weight" to the preference for that associated kind of content.  This
// §    weight is often referred to as a "quality value" (or "qvalue") because
// §    the same parameter name is often used within server configurations to
// §    assign a weight to the relative quality of the various
// §    representations that can be selected for a resource.
// §
// §    The weight is normalized to a real number in the range 0 through 1,
// §    where 0.001 is the least preferred and 1 is the most preferred; a
// §    value of 0 means "not acceptable".  If no "q" parameter is present,
// §    the default weight is 1.
// §
// §      weight = OWS ";" OWS "q=" qvalue
// §      qvalue = ( "0" [ "." 0*3DIGIT ] )
// §             / ( "1" [ "." 0*3("0") ] )

// weight extracts the qvalue from an element's parameter list.
// The boolean is false when a q parameter is present but unparsable,
// in which case the whole element is treated as malformed.
func weight(params []string) (float64, bool) {
	for _, p := range params {
		name, value, found := strings.Cut(p, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(name), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || q < 0 || q > 1 {
			return 0, false
		}
		return q, true
	}
	return 1, true
}
