package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for health checks and CORS preflights
var unlimited = EndpointConfig{}

// MatchEndpoint returns the rule for path and method, or nil when the default applies.
// Exact paths win over prefix rules; among prefix rules the longest wins.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		rule := unlimited
		return &rule
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
