package main

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/indigo-web/compressvary/config"
	"github.com/indigo-web/compressvary/proxy"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	portFlag           int
	upstreamFlag       string
	hostFlag           string
	configFilenameFlag string
	compressVaryFlag   string
	certFlag           string
	keyFlag            string
	autocertFlag       string
	maxTokensFlag      int
	verbosityTraceFlag bool

	// this is set at build time
	version string
)

func init() {
	// .env is optional, real environment takes precedence
	_ = godotenv.Load()

	flag.StringVar(&upstreamFlag, "upstream", os.Getenv("COMPRESSVARY_UPSTREAM"), "Upstream URL to proxy to")
	flag.StringVar(&hostFlag, "host", "", "Host header to send upstream (incoming one is kept if empty)")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&configFilenameFlag, "config", os.Getenv("COMPRESSVARY_CONFIG"), "Path to config file")
	flag.StringVar(&compressVaryFlag, "compress-vary", "", "Main-level compress_vary (on/off, overrides config)")
	flag.StringVar(&certFlag, "cert", "", "TLS certificate file")
	flag.StringVar(&keyFlag, "key", "", "TLS key file")
	flag.StringVar(&autocertFlag, "autocert", "", "Comma-separated domains to obtain certificates for automatically")
	flag.IntVar(&maxTokensFlag, "max-tokens", 0, "Maximal number of Vary tokens per response (0 is default)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}
	log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Str("version", version).Str("instance", uuid.NewString()).Logger()

	var file config.File
	if configFilenameFlag != "" {
		var err error
		if file, err = config.Load(configFilenameFlag); err != nil {
			log.Fatal().Err(err).Msg("Cannot load config")
		}
	}

	if compressVaryFlag != "" {
		flagValue, err := config.ParseFlag(compressVaryFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Bad -compress-vary value")
		}

		file.CompressVary = flagValue
	}

	scopes, err := config.Resolve(file)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot resolve config")
	}

	limits := config.Default()
	if maxTokensFlag > 0 {
		limits.Vary.Tokens.Maximal = maxTokensFlag
		limits.Vary.Tokens.Default = min(limits.Vary.Tokens.Default, maxTokensFlag)
	}

	if upstreamFlag == "" {
		log.Fatal().Msg("Please specify upstream")
	}

	upstreamURL, err := url.Parse(upstreamFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not parse url")
	}

	p, err := proxy.New(proxy.Config{
		Upstream:     upstreamURL,
		UpstreamHost: hostFlag,
		Scopes:       scopes,
		Limits:       limits,
		Logger:       &log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot create proxy")
	}

	listen := plainListener
	switch {
	case autocertFlag != "":
		listen = autoTLSListener(strings.Split(autocertFlag, ",")...)
	case certFlag != "" && keyFlag != "":
		listen = tlsListener(certFlag, keyFlag)
	}

	listener, err := listen("tcp", fmt.Sprintf(":%d", portFlag))
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot listen")
	}

	for _, scope := range scopes.Scopes() {
		log.Debug().Str("scope", scope.Name).Bool("compressVary", scope.CompressVary).Msg("Resolved scope")
	}

	log.Info().Msgf("Proxying port %v to %s", portFlag, upstreamURL.String())
	if err = http.Serve(listener, p); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
