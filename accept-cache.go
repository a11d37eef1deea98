// Package acceptcache negotiates HTTP response content against a
// request's Accept, Accept-Charset, Accept-Encoding and Accept-Language
// header fields, memoizing outcomes in a shared bounded cache.
//
// A Negotiator is created per request and costs nothing to construct;
// the caches behind it live for the process. Media type candidates may
// be given as file-extension shorthands ("json", "html"), which are
// resolved through the platform media type table and handed back in the
// form the caller passed them.
package acceptcache

import (
	"net/http"

	"github.com/accept-cache/accept-cache/core"
	mediatype "github.com/accept-cache/accept-cache/pkg/media-type"
	"github.com/accept-cache/accept-cache/rfc9110"
)

var (
	defaultCache    = core.New(core.Config{})
	defaultResolver = mediatype.NewResolver()
)

// Negotiator answers negotiation questions for one request. It holds the
// request's four negotiation header values and no other state; all
// memoization lives in the shared caches. Methods may be called any
// number of times in any order.
type Negotiator struct {
	accept   headerField
	charset  headerField
	encoding headerField
	language headerField
	cache    *core.Cache
	resolver *mediatype.Resolver
}

// New creates a negotiator for a request, backed by the process-wide
// caches.
func New(r *http.Request) *Negotiator {
	return NewWithCache(r, defaultCache, defaultResolver)
}

// NewWithCache creates a negotiator backed by the given caches instead
// of the shared ones. Tests use this to avoid state bleeding between
// cases.
func NewWithCache(r *http.Request, cache *core.Cache, resolver *mediatype.Resolver) *Negotiator {
	return &Negotiator{
		accept:   fieldOf(r.Header, HeaderAccept),
		charset:  fieldOf(r.Header, HeaderAcceptCharset),
		encoding: fieldOf(r.Header, HeaderAcceptEncoding),
		language: fieldOf(r.Header, HeaderAcceptLanguage),
		cache:    cache,
		resolver: resolver,
	}
}

// Type returns the offered media type the client prefers. Offers are
// either full media types or file-extension shorthands; the returned
// token is the offer exactly as passed. The boolean is false when
// nothing offered is acceptable, or when no offers are given.
//
// With no Accept header everything is acceptable and the first offer
// wins without any negotiation cost. A single offer is checked directly
// against the header and bypasses the result cache.
func (n *Negotiator) Type(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return "", false
	}
	if !n.accept.present {
		return offers[0], true
	}
	if len(offers) == 1 {
		return n.typeSingle(offers[0])
	}

	if outcome, ok := n.cache.Lookup(core.FamilyType, n.accept.value, offers); ok {
		return outcome.Token, outcome.Acceptable
	}
	canonical, original := n.resolveOffers(offers)
	var outcome core.Outcome
	if ranked := rfc9110.MediaTypes(n.accept.value, canonical); len(ranked) > 0 {
		outcome = core.Outcome{Token: original[ranked[0]], Acceptable: true}
	}
	n.cache.Store(core.FamilyType, n.accept.value, offers, outcome)
	return outcome.Token, outcome.Acceptable
}

func (n *Negotiator) typeSingle(offer string) (string, bool) {
	canonical, ok := n.resolver.Resolve(offer)
	if !ok {
		return "", false
	}
	if ranked := rfc9110.MediaTypes(n.accept.value, []string{canonical}); len(ranked) == 0 {
		return "", false
	}
	return offer, true
}

// resolveOffers canonicalizes media type offers, dropping ones that
// cannot be resolved, and keeps the mapping back to the original tokens.
// If two offers resolve to the same media type the first one wins.
func (n *Negotiator) resolveOffers(offers []string) ([]string, map[string]string) {
	canonical := make([]string, 0, len(offers))
	original := make(map[string]string, len(offers))
	for _, offer := range offers {
		c, ok := n.resolver.Resolve(offer)
		if !ok {
			continue
		}
		if _, seen := original[c]; seen {
			continue
		}
		original[c] = offer
		canonical = append(canonical, c)
	}
	return canonical, original
}

// Encoding returns the offered content coding the client prefers, or
// false when nothing offered is acceptable.
func (n *Negotiator) Encoding(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return "", false
	}
	return n.negotiate(core.FamilyEncoding, n.encodingValue(), offers, rfc9110.Encodings)
}

// Charset returns the offered charset the client prefers, or false when
// nothing offered is acceptable.
func (n *Negotiator) Charset(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return "", false
	}
	return n.negotiate(core.FamilyCharset, wildcardIfAbsent(n.charset), offers, rfc9110.Charsets)
}

// Language returns the offered language tag the client prefers, or
// false when nothing offered is acceptable.
func (n *Negotiator) Language(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return "", false
	}
	return n.negotiate(core.FamilyLanguage, wildcardIfAbsent(n.language), offers, rfc9110.Languages)
}

// negotiate is the shared cached path for the non-media families: the
// offers go to the engine as-is and the top-ranked one is memoized,
// not-acceptable included.
func (n *Negotiator) negotiate(family core.Family, header string, offers []string, engine func(string, []string) []string) (string, bool) {
	if outcome, ok := n.cache.Lookup(family, header, offers); ok {
		return outcome.Token, outcome.Acceptable
	}
	var outcome core.Outcome
	if ranked := engine(header, offers); len(ranked) > 0 {
		outcome = core.Outcome{Token: ranked[0], Acceptable: true}
	}
	n.cache.Store(family, header, offers, outcome)
	return outcome.Token, outcome.Acceptable
}

// AcceptedTypes returns every media range the client accepts, best
// first. The list comes straight from the header and is not cached.
func (n *Negotiator) AcceptedTypes() []string {
	return rfc9110.MediaTypes(wildcardIfAbsent(n.accept), nil)
}

// AcceptedEncodings returns every content coding the client accepts,
// best first, uncached.
func (n *Negotiator) AcceptedEncodings() []string {
	return rfc9110.Encodings(n.encodingValue(), nil)
}

// AcceptedCharsets returns every charset the client accepts, best
// first, uncached.
func (n *Negotiator) AcceptedCharsets() []string {
	return rfc9110.Charsets(wildcardIfAbsent(n.charset), nil)
}

// AcceptedLanguages returns every language the client accepts, best
// first, uncached.
func (n *Negotiator) AcceptedLanguages() []string {
	return rfc9110.Languages(wildcardIfAbsent(n.language), nil)
}

// wildcardIfAbsent maps an absent header to "anything is acceptable".
// A header sent empty stays empty: it accepts nothing.
func wildcardIfAbsent(field headerField) string {
	if !field.present {
		return "*"
	}
	return field.value
}

// encodingValue maps an absent Accept-Encoding header to the empty
// field value; per the engine's contract both accept only identity.
func (n *Negotiator) encodingValue() string {
	return n.encoding.value
}
