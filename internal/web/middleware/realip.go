package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
)

type ctxKey int

const clientIPKey ctxKey = iota

// ProxyList holds the networks whose forwarding headers are believed.
type ProxyList []*net.IPNet

// ParseProxyList reads CIDRs or bare IPs. Bad entries are logged and skipped.
func ParseProxyList(entries []string) ProxyList {
	var list ProxyList
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if _, network, err := net.ParseCIDR(entry); err == nil {
			list = append(list, network)
			continue
		}

		ip := net.ParseIP(entry)
		if ip == nil {
			slog.Warn("realip: invalid trusted proxy, skipping", "entry", entry)
			continue
		}
		bits := 128
		if ip.To4() != nil {
			ip, bits = ip.To4(), 32
		}
		list = append(list, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return list
}

func (p ProxyList) trusts(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, network := range p {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// Resolve returns the visitor's IP for r.
//
// Only a peer inside the list may name the client: X-Real-IP wins, then the
// first X-Forwarded-For hop. Anything else resolves to the peer itself.
func (p ProxyList) Resolve(r *http.Request) string {
	peer := hostOnly(r.RemoteAddr)
	if !p.trusts(net.ParseIP(peer)) {
		return peer
	}

	if ip := headerIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	if ip := headerIP(first); ip != "" {
		return ip
	}
	return peer
}

// TrustedRealIP resolves the client IP once per request and stores it for
// ClientIP. RemoteAddr is left untouched.
func TrustedRealIP(trusted []string) func(http.Handler) http.Handler {
	proxies := ParseProxyList(trusted)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientIPKey, proxies.Resolve(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP returns the IP stored by TrustedRealIP, or the peer host when the
// middleware did not run.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey).(string); ok && ip != "" {
		return ip
	}
	return hostOnly(r.RemoteAddr)
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// headerIP normalizes a forwarded address, or returns "" when it is not an IP.
func headerIP(v string) string {
	if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
		return ip.String()
	}
	return ""
}
