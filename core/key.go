package core

import (
	"strconv"
	"strings"
)

// Family tags one of the four negotiation header families. The tag is
// part of every cache key, so outcomes for e.g. an Accept-Charset value
// can never collide with outcomes for an identical Accept-Encoding value.
type Family string

const (
	FamilyType     Family = "t"
	FamilyEncoding Family = "e"
	FamilyCharset  Family = "c"
	FamilyLanguage Family = "l"
)

type CacheKeyer struct{}

// Key builds the cache key for one negotiation: family tag, header
// value and each candidate token in caller order, every segment length-
// prefixed. Length prefixes make the encoding injective regardless of
// what bytes the header value or tokens contain, so two different
// (header, candidates) inputs can never produce the same key.
//
// E.g. family "e", header "gzip, br" and candidates ["gzip", "identity"]
// yield "e:8:gzip, br4:gzip8:identity".
func (CacheKeyer) Key(family Family, header string, candidates []string) string {
	var b strings.Builder
	b.Grow(8 + len(header) + 8*len(candidates))
	b.WriteString(string(family))
	b.WriteByte(':')
	writeSegment(&b, header)
	for _, c := range candidates {
		writeSegment(&b, c)
	}
	return b.String()
}

func writeSegment(b *strings.Builder, segment string) {
	b.WriteString(strconv.Itoa(len(segment)))
	b.WriteByte(':')
	b.WriteString(segment)
}
