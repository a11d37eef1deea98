// Package mediatype resolves short file-extension tokens into canonical
// media types, e.g. "json" into "application/json".
package mediatype

import (
	"mime"
	"strings"
	"sync"
)

// LookupFunc maps a file extension (with leading dot) to a media type
// string, or "" if the extension is unknown.
type LookupFunc func(ext string) string

// Resolver memoizes extension lookups. Failed lookups are cached too, so
// a repeatedly offered bogus token costs one table lookup total. The
// cache is never evicted; the universe of valid extensions is small.
//
// Safe for concurrent use.
type Resolver struct {
	mu     sync.Mutex
	lookup LookupFunc
	cache  map[string]string
}

// NewResolver creates a resolver backed by the platform media type table.
func NewResolver() *Resolver {
	return NewResolverFunc(mime.TypeByExtension)
}

// NewResolverFunc creates a resolver backed by a custom lookup.
func NewResolverFunc(lookup LookupFunc) *Resolver {
	return &Resolver{
		lookup: lookup,
		cache:  make(map[string]string),
	}
}

// Resolve returns the canonical media type for a token. A token already
// containing a slash is canonical and passes through untouched and
// uncached. The boolean is false when the token cannot be resolved.
func (r *Resolver) Resolve(token string) (string, bool) {
	if strings.ContainsRune(token, '/') {
		return token, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	canonical, ok := r.cache[token]
	if !ok {
		canonical = stripParameters(r.lookup("." + token))
		r.cache[token] = canonical
	}
	return canonical, canonical != ""
}

// stripParameters reduces a media type string to its bare type/subtype.
// The platform table returns e.g. "text/html; charset=utf-8".
func stripParameters(mediaType string) string {
	if mediaType == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return ""
	}
	return parsed
}
