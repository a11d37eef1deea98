package acceptcache

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accept-cache/accept-cache/core"
	mediatype "github.com/accept-cache/accept-cache/pkg/media-type"
)

// extension table pinned down so tests do not depend on the host's
// mime configuration
func testLookup(ext string) string {
	return map[string]string{
		".html": "text/html",
		".json": "application/json",
		".xml":  "application/xml",
		".text": "text/plain",
		".png":  "image/png",
	}[ext]
}

type testEnv struct {
	cache    *core.Cache
	resolver *mediatype.Resolver
}

func newTestEnv() testEnv {
	return testEnv{
		cache:    core.New(core.Config{}),
		resolver: mediatype.NewResolverFunc(testLookup),
	}
}

func (e testEnv) negotiator(headers map[string]string) *Negotiator {
	r := httptest.NewRequest("GET", "/", nil)
	for name, value := range headers {
		r.Header.Set(name, value)
	}
	return NewWithCache(r, e.cache, e.resolver)
}

func TestTypeWeightedMatch(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{
		HeaderAccept: "application/json, text/html, text/plain;q=0.5, application/xml;q=0.8",
	})

	token, ok := n.Type("html", "json", "xml", "text")
	require.True(t, ok)
	assert.Equal(t, "json", token, "token must be the original shorthand, not the media type")
}

func TestTypeNoAcceptHeader(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(nil)

	token, ok := n.Type("html", "json")
	require.True(t, ok)
	assert.Equal(t, "html", token)
	assert.Zero(t, env.cache.Len(), "fast path must not touch the cache")
}

func TestTypeSingleOffer(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAccept: "text/*, application/json"})

	_, ok := n.Type("png")
	assert.False(t, ok)

	token, ok := n.Type("html")
	require.True(t, ok)
	assert.Equal(t, "html", token)

	assert.Zero(t, env.cache.Len(), "single-offer checks bypass the cache")
}

func TestTypeUnknownOffersDropped(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAccept: "*/*"})

	token, ok := n.Type("nonsense", "json")
	require.True(t, ok)
	assert.Equal(t, "json", token)

	_, ok = n.Type("nonsense", "gibberish")
	assert.False(t, ok, "only unknown offers means not acceptable")
}

func TestTypeNotAcceptableMemoized(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAccept: "image/webp"})

	_, ok := n.Type("html", "json")
	assert.False(t, ok)
	assert.Equal(t, 1, env.cache.Len(), "not-acceptable outcomes are cached too")

	_, ok = n.Type("html", "json")
	assert.False(t, ok)
	assert.Equal(t, 1, env.cache.Len())
}

func TestEncodingMatch(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAcceptEncoding: "gzip, deflate, br"})

	token, ok := n.Encoding("gzip", "deflate", "identity")
	require.True(t, ok)
	assert.Equal(t, "gzip", token)
}

func TestEncodingAbsentHeader(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(nil)

	token, ok := n.Encoding("gzip", "identity")
	require.True(t, ok)
	assert.Equal(t, "identity", token)

	_, ok = n.Encoding("gzip", "br")
	assert.False(t, ok)
}

func TestCharsetRankedList(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAcceptCharset: "utf-8, iso-8859-1;q=0.2, utf-7;q=0.5"})

	assert.Equal(t, []string{"utf-8", "utf-7", "iso-8859-1"}, n.AcceptedCharsets())
	assert.Zero(t, env.cache.Len(), "full lists are not cached")
}

func TestLanguageWeightedMatch(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAcceptLanguage: "en;q=0.8, es, pt"})

	token, ok := n.Language("en", "es")
	require.True(t, ok)
	assert.Equal(t, "es", token)
}

func TestAbsentHeadersAcceptAnything(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(nil)

	token, ok := n.Charset("utf-8")
	require.True(t, ok)
	assert.Equal(t, "utf-8", token)

	token, ok = n.Language("fi", "sv")
	require.True(t, ok)
	assert.Equal(t, "fi", token)

	assert.Equal(t, []string{"*"}, n.AcceptedCharsets())
	assert.Equal(t, []string{"*/*"}, n.AcceptedTypes())
}

func TestEmptyHeaderAcceptsNothing(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAcceptLanguage: ""})

	_, ok := n.Language("en")
	assert.False(t, ok)
}

func TestIdempotenceAcrossContexts(t *testing.T) {
	env := newTestEnv()
	headers := map[string]string{HeaderAccept: "text/html;q=0.9, application/json"}

	first, ok1 := env.negotiator(headers).Type("html", "json")
	second, ok2 := env.negotiator(headers).Type("html", "json")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestCacheTransparency(t *testing.T) {
	headers := map[string]string{
		HeaderAccept:         "application/json;q=0.9, text/*",
		HeaderAcceptEncoding: "br;q=0.7, gzip;q=0.8",
		HeaderAcceptLanguage: "en-US, en;q=0.5",
	}

	// two isolated environments: in the first every call misses, in the
	// second every call after the first is served from cache
	fresh := newTestEnv()
	cached := newTestEnv()
	warm := cached.negotiator(headers)
	warm.Type("html", "json")
	warm.Encoding("gzip", "br")
	warm.Language("en-US", "sv")

	freshN := fresh.negotiator(headers)
	cachedN := cached.negotiator(headers)

	f1, fo1 := freshN.Type("html", "json")
	c1, co1 := cachedN.Type("html", "json")
	assert.Equal(t, f1, c1)
	assert.Equal(t, fo1, co1)

	f2, fo2 := freshN.Encoding("gzip", "br")
	c2, co2 := cachedN.Encoding("gzip", "br")
	assert.Equal(t, f2, c2)
	assert.Equal(t, fo2, co2)

	f3, fo3 := freshN.Language("en-US", "sv")
	c3, co3 := cachedN.Language("en-US", "sv")
	assert.Equal(t, f3, c3)
	assert.Equal(t, fo3, co3)
}

func TestOfferOrderCachesSeparately(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAccept: "*/*"})

	a, _ := n.Type("html", "json")
	b, _ := n.Type("json", "html")
	assert.Equal(t, "html", a)
	assert.Equal(t, "json", b)
	assert.Equal(t, 2, env.cache.Len())
}

func TestZeroOffersSelection(t *testing.T) {
	env := newTestEnv()
	n := env.negotiator(map[string]string{HeaderAccept: "text/html"})

	_, ok := n.Type()
	assert.False(t, ok)
	_, ok = n.Encoding()
	assert.False(t, ok)
	_, ok = n.Charset()
	assert.False(t, ok)
	_, ok = n.Language()
	assert.False(t, ok)
}

func TestSharedDefaultCache(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(HeaderAccept, "application/json")
	n := New(r)

	token, ok := n.Type("application/json", "text/html")
	require.True(t, ok)
	assert.Equal(t, "application/json", token)
}
