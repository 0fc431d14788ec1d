package proxy

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/indigo-web/compressvary/config"
	"github.com/indigo-web/compressvary/errors"
	cvhttp "github.com/indigo-web/compressvary/http"
	"github.com/indigo-web/compressvary/kv"
	"github.com/indigo-web/compressvary/pipeline"
	"github.com/indigo-web/compressvary/vary"
	"github.com/indigo-web/utils/strcomp"
	json "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

type Config struct {
	// URL of the upstream server. Upstreams with paths are not supported.
	Upstream *url.URL
	// Hostname to send upstream. The incoming Host is kept if empty.
	UpstreamHost string
	// Scopes are resolved directives. Everything is off if nil.
	Scopes *config.Resolved
	// Limits for per-response memory. config.Default() is used if nil.
	Limits *config.Config
	// Logger to use. A console logger is used if nil.
	Logger *zerolog.Logger
	// Stages are run after the Vary merge, in order.
	Stages []pipeline.Stage
}

// Proxy is a reverse proxy normalizing the headers of upstream responses.
type Proxy struct {
	router    chi.Router
	reverse   *httputil.ReverseProxy
	handler   pipeline.Handler
	scopes    *config.Resolved
	responses sync.Pool
	log       zerolog.Logger
}

type scopeKey struct{}

func New(cfg Config) (*Proxy, error) {
	if cfg.Upstream == nil || len(cfg.Upstream.Host) == 0 {
		return nil, errors.ErrNoUpstream
	}

	var logger zerolog.Logger
	if cfg.Logger == nil {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = *cfg.Logger
	}

	limits := cfg.Limits
	if limits == nil {
		limits = config.Default()
	}

	scopes := cfg.Scopes
	if scopes == nil {
		var err error
		if scopes, err = config.Resolve(config.File{}); err != nil {
			return nil, err
		}
	}

	p := &Proxy{
		scopes: scopes,
		log: logger.With().
			Str("upstream", cfg.Upstream.String()).
			Logger(),
		handler: pipeline.Compose(pipeline.Terminate, append([]pipeline.Stage{vary.Filter}, cfg.Stages...)...),
	}
	p.responses.New = func() any {
		return cvhttp.NewResponse(limits)
	}
	p.reverse = &httputil.ReverseProxy{
		Director:       createDirector(cfg.Upstream.Scheme, cfg.Upstream.Host, cfg.UpstreamHost),
		ModifyResponse: p.modifyResponse,
		ErrorHandler:   p.handleError,
	}

	router := chi.NewRouter()
	router.Use(requestID, chimiddleware.RealIP)
	router.Get("/-/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/-/config", p.dumpConfig)
	router.Handle("/*", http.HandlerFunc(p.forward))
	p.router = router

	return p, nil
}

// ServeHTTP implements the http.Handler interface.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

func (p *Proxy) forward(w http.ResponseWriter, r *http.Request) {
	scope := p.scopes.Lookup(r.Host, r.URL.Path)
	r = r.WithContext(context.WithValue(r.Context(), scopeKey{}, scope))
	p.reverse.ServeHTTP(w, r)
}

func (p *Proxy) modifyResponse(res *http.Response) error {
	response := p.responses.Get().(*cvhttp.Response)
	defer func() {
		response.Release()
		p.responses.Put(response)
	}()

	scope, _ := res.Request.Context().Value(scopeKey{}).(*config.Scope)
	if scope == nil {
		scope = p.scopes.Lookup(res.Request.Host, res.Request.URL.Path)
	}

	response.Scope = scope
	response.EncodingNegotiated = Negotiated(res.Request.Header, res.Header)
	FromHeader(response.Headers, res.Header)

	if err := p.handler(response); err != nil {
		return err
	}

	res.Header = ToHeader(response.Headers)

	if e := p.log.Trace(); e.Enabled() {
		merged, _ := response.Headers.Get(vary.Key)
		e.Str("id", chimiddleware.GetReqID(res.Request.Context())).
			Str("scope", scope.Name).
			Bool("negotiated", response.EncodingNegotiated).
			Bytes("vary", merged).
			Msg("Normalized response headers")
	}

	return nil
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	level := zerolog.ErrorLevel
	if stderrors.Is(err, errors.ErrAllocation) {
		level = zerolog.WarnLevel
	}

	p.log.WithLevel(level).
		Err(err).
		Str("id", chimiddleware.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg("Could not proxy the request")

	w.WriteHeader(http.StatusBadGateway)
}

func (p *Proxy) dumpConfig(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p.scopes.Scopes()); err != nil {
		p.log.Error().Err(err).Msg("Could not encode scopes")
	}
}

func createDirector(scheme, host, hostHeader string) func(req *http.Request) {
	return func(req *http.Request) {
		req.URL.Scheme = scheme
		req.URL.Host = host
		if hostHeader != "" {
			req.Host = hostHeader
		}
	}
}

// Negotiated reports whether the response body was encoded according to the request's
// Accept-Encoding.
func Negotiated(request, response http.Header) bool {
	if len(request.Values("Accept-Encoding")) == 0 {
		return false
	}

	coding := response.Get("Content-Encoding")

	return len(coding) > 0 && !strcomp.EqualFold(coding, "identity")
}

// FromHeader fills the storage with the header fields. Keys are sorted, as maps are
// unordered, and values keep their order. Strings aren't copied.
func FromHeader(storage *kv.Storage, header http.Header) {
	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		for _, value := range header[key] {
			storage.AddString(key, value)
		}
	}
}

// ToHeader copies live fields into a new http.Header.
func ToHeader(storage *kv.Storage) http.Header {
	header := make(http.Header, storage.Len())
	for key, value := range storage.Pairs() {
		header.Add(string(key), string(value))
	}

	return header
}
