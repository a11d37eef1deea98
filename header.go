package acceptcache

import (
	"net/http"
	"strings"
)

const (
	// HeaderAccept can be used by user agents to specify
	// response media types that are acceptable.
	HeaderAccept = "Accept"

	// HeaderAcceptCharset can be sent by a user agent to indicate
	// what charsets are acceptable in textual response content.
	HeaderAcceptCharset = "Accept-Charset"

	// HeaderAcceptEncoding can be used by user agents to indicate
	// what response content-codings are acceptable in the response.
	HeaderAcceptEncoding = "Accept-Encoding"

	// HeaderAcceptLanguage can be used by user agents to indicate
	// the set of natural languages that are preferred in the response.
	HeaderAcceptLanguage = "Accept-Language"
)

// headerField is one negotiation header as it arrived on the request.
// An absent header is a distinct state from a header sent empty.
type headerField struct {
	value   string
	present bool
}

func fieldOf(header http.Header, name string) headerField {
	values := header.Values(name)
	if len(values) == 0 {
		return headerField{}
	}
	return headerField{value: strings.Join(values, ", "), present: true}
}
