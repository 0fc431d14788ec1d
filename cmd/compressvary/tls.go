package main

import (
	"crypto/tls"
	"net"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/acme/autocert"
)

type listenerFactory func(network, addr string) (net.Listener, error)

func plainListener(network, addr string) (net.Listener, error) {
	return net.Listen(network, addr)
}

func tlsListener(cert, key string) listenerFactory {
	return func(network, addr string) (net.Listener, error) {
		certificate, err := tls.LoadX509KeyPair(cert, key)
		if err != nil {
			return nil, err
		}

		return tls.Listen(network, addr, &tls.Config{
			Certificates: []tls.Certificate{certificate},
		})
	}
}

func autoTLSListener(domains ...string) listenerFactory {
	return func(network, addr string) (net.Listener, error) {
		m := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(domains...),
		}

		if cache, err := autocertCache(); err != nil {
			log.Warn().Err(err).Msg("Auto HTTPS: not using a cache")
		} else {
			m.Cache = cache
		}

		return tls.Listen(network, addr, &tls.Config{
			GetCertificate: m.GetCertificate,
		})
	}
}

// autocertCache keeps issued certificates in the user's cache directory, so restarts
// don't hit the ACME rate limits.
func autocertCache() (autocert.Cache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(base, "compressvary-autocert")
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return autocert.DirCache(dir), nil
}
