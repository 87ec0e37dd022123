package middleware

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"go.uber.org/zap"
)

// SourceAllowlist restricts a route to the gateway's published source
// addresses. An empty allowlist admits every caller.
type SourceAllowlist struct {
	prefixes []netip.Prefix
	logger   *zap.Logger
}

// NewSourceAllowlist parses entries as single IPs or CIDR ranges
func NewSourceAllowlist(entries []string, logger *zap.Logger) (*SourceAllowlist, error) {
	a := &SourceAllowlist{logger: logger}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid allowlist range %q: %w", entry, err)
			}
			a.prefixes = append(a.prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid allowlist address %q: %w", entry, err)
		}
		a.prefixes = append(a.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	logger.Info("Loaded gateway source allowlist", zap.Int("count", len(a.prefixes)))
	return a, nil
}

// Allows reports whether ip may call the protected route
func (a *SourceAllowlist) Allows(ip string) bool {
	if len(a.prefixes) == 0 {
		return true
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range a.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Middleware rejects callers outside the allowlist with 403
func (a *SourceAllowlist) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !a.Allows(ip) {
			a.logger.Warn("Gateway notification from unauthorized source",
				zap.String("ip", ip),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

