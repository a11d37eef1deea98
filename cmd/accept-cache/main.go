// Command accept-cache runs a small demonstration server that serves one
// greeting resource in several representations, picked per request
// through the negotiation cache.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	acceptcache "github.com/accept-cache/accept-cache"
	"github.com/accept-cache/accept-cache/core"
	mediatype "github.com/accept-cache/accept-cache/pkg/media-type"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configFilenameFlag string
	portFlag           int
	verbosityTraceFlag bool
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to config file")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on (overridden by config)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
}

var greetings = map[string]map[string]string{
	"json": {
		"en": `{"greeting":"hello"}`,
		"fi": `{"greeting":"terve"}`,
		"sv": `{"greeting":"hej"}`,
	},
	"html": {
		"en": "<p>hello</p>",
		"fi": "<p>terve</p>",
		"sv": "<p>hej</p>",
	},
	"text": {
		"en": "hello",
		"fi": "terve",
		"sv": "hej",
	},
}

var contentTypes = map[string]string{
	"json": "application/json",
	"html": "text/html; charset=utf-8",
	"text": "text/plain; charset=utf-8",
}

func main() {
	flag.Parse()

	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}
	log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stdout})

	port := portFlag
	cacheConfig := core.Config{}

	if configFilenameFlag != "" {
		config, err := getConfig(configFilenameFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not read config")
		}
		if config.Port > 0 {
			port = config.Port
		}
		cacheConfig.MaxEntries = config.CacheEntries
		cacheConfig.EvictBatch = config.EvictBatch
	}

	cache := core.New(cacheConfig)
	resolver := mediatype.NewResolver()

	r := chi.NewRouter()
	r.Get("/greeting", func(w http.ResponseWriter, req *http.Request) {
		n := acceptcache.NewWithCache(req, cache, resolver)

		format, ok := n.Type("json", "html", "text")
		if !ok {
			http.Error(w, "Not acceptable", http.StatusNotAcceptable)
			return
		}
		lang, ok := n.Language("en", "fi", "sv")
		if !ok {
			lang = "en"
		}

		log.Debug().Str("format", format).Str("lang", lang).Int("cached", cache.Len()).Msg("Serving greeting")

		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("Content-Language", lang)
		w.Header().Set("Vary", "Accept, Accept-Language")
		fmt.Fprintln(w, greetings[format][lang])
	})

	log.Info().Int("port", port).Msg("Starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), r); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}
