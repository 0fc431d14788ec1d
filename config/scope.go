package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/indigo-web/compressvary/errors"
	"github.com/indigo-web/utils/strcomp"
	"gopkg.in/yaml.v3"
)

// Directives are the settings, which may appear at any nesting level.
type Directives struct {
	CompressVary Flag `yaml:"compressVary"`
}

type Location struct {
	Prefix     string `yaml:"prefix"`
	Directives `yaml:",inline"`
}

type Server struct {
	// Host is matched against the request's host case-insensitively. Empty host matches
	// any request, which isn't matched by another server.
	Host       string     `yaml:"host"`
	Locations  []Location `yaml:"locations"`
	Directives `yaml:",inline"`
}

// File is the main scope, as it's represented in a configuration file.
type File struct {
	Servers    []Server `yaml:"servers"`
	Directives `yaml:",inline"`
}

// Load reads and decodes the configuration file.
func Load(filename string) (File, error) {
	var file File

	data, err := os.ReadFile(filename)
	if err != nil {
		return file, err
	}

	if err = yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("config: %s: %w", filename, err)
	}

	return file, nil
}

// Scope is a resolved set of directives. It's never modified after being resolved.
type Scope struct {
	Name         string `json:"name"`
	CompressVary bool   `json:"compressVary"`
}

type resolvedLocation struct {
	prefix string
	scope  *Scope
}

type resolvedServer struct {
	host      string
	scope     *Scope
	locations []resolvedLocation
}

// Resolved holds concrete scopes for every configuration block.
type Resolved struct {
	main    *Scope
	servers []resolvedServer
}

// Resolve merges every block with its parents, so that unset directives are inherited from
// the enclosing scope. Unset at the top level means off.
func Resolve(file File) (*Resolved, error) {
	mainFlag := file.CompressVary.Merge(Off)
	resolved := &Resolved{
		main: &Scope{Name: "main", CompressVary: mainFlag.Bool()},
	}

	for _, server := range file.Servers {
		serverFlag := server.CompressVary.Merge(mainFlag)
		name := "server " + orDefault(server.Host, "*")
		rs := resolvedServer{
			host:  server.Host,
			scope: &Scope{Name: name, CompressVary: serverFlag.Bool()},
		}

		for _, location := range server.Locations {
			if !strings.HasPrefix(location.Prefix, "/") {
				return nil, fmt.Errorf("%s: %q: %w", name, location.Prefix, errors.ErrBadLocation)
			}

			rs.locations = append(rs.locations, resolvedLocation{
				prefix: location.Prefix,
				scope: &Scope{
					Name:         name + " location " + location.Prefix,
					CompressVary: location.CompressVary.Merge(serverFlag).Bool(),
				},
			})
		}

		resolved.servers = append(resolved.servers, rs)
	}

	return resolved, nil
}

// Lookup returns the most specific scope for the request. The longest matching location
// prefix wins.
func (r *Resolved) Lookup(host, path string) *Scope {
	server := r.server(host)
	if server == nil {
		return r.main
	}

	scope, longest := server.scope, -1
	for _, location := range server.locations {
		if len(location.prefix) > longest && strings.HasPrefix(path, location.prefix) {
			scope, longest = location.scope, len(location.prefix)
		}
	}

	return scope
}

// Scopes returns all the resolved scopes, starting from the main one.
func (r *Resolved) Scopes() []*Scope {
	scopes := []*Scope{r.main}
	for _, server := range r.servers {
		scopes = append(scopes, server.scope)
		for _, location := range server.locations {
			scopes = append(scopes, location.scope)
		}
	}

	return scopes
}

func (r *Resolved) server(host string) *resolvedServer {
	if colon := strings.LastIndexByte(host, ':'); colon != -1 && !strings.HasSuffix(host, "]") {
		host = host[:colon]
	}

	var fallback *resolvedServer

	for i := range r.servers {
		switch server := &r.servers[i]; {
		case len(server.host) == 0:
			if fallback == nil {
				fallback = server
			}
		case strcomp.EqualFold(server.host, host):
			return server
		}
	}

	return fallback
}

func orDefault(str, otherwise string) string {
	if len(str) == 0 {
		return otherwise
	}

	return str
}
