package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxEntries = 10000

// Limiter applies a token-bucket rate limit per client IP. Forwarding
// headers are honored only when the request arrives from a trusted proxy.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client

	rate    rate.Limit
	burst   int
	maxIdle time.Duration
	proxies []*net.IPNet
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New builds a per-IP limiter allowing r requests per second with the given
// burst. Entries idle longer than maxIdle are evicted periodically.
// trustedProxies lists proxy IPs or CIDR ranges; when empty, forwarding
// headers are trusted from any peer.
func New(r rate.Limit, burst int, maxIdle time.Duration, trustedProxies []string) *Limiter {
	l := &Limiter{
		clients: make(map[string]*client),
		rate:    r,
		burst:   burst,
		maxIdle: maxIdle,
		proxies: parseProxies(trustedProxies),
	}
	go l.evictLoop()
	return l
}

// Middleware rejects requests over the limit with 429.
func (l *Limiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(l.clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *Limiter) allow(ip string) bool {
	l.mu.Lock()
	c, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= maxEntries {
			l.evictOldestLocked()
		}
		c = &client{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	l.mu.Unlock()
	return c.limiter.Allow()
}

func (l *Limiter) evictOldestLocked() {
	var oldest string
	var oldestSeen time.Time
	for ip, c := range l.clients {
		if oldest == "" || c.lastSeen.Before(oldestSeen) {
			oldest, oldestSeen = ip, c.lastSeen
		}
	}
	if oldest != "" {
		delete(l.clients, oldest)
	}
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(l.maxIdle)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * l.maxIdle)
		l.mu.Lock()
		for ip, c := range l.clients {
			if c.lastSeen.Before(cutoff) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP resolves the originating client address, preferring forwarding
// headers when the direct peer is a trusted proxy.
func (l *Limiter) clientIP(r *http.Request) string {
	peer := parseAddr(r.RemoteAddr)

	if len(l.proxies) > 0 && !l.fromTrustedProxy(peer) {
		return peer.String()
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}
	return peer.String()
}

func (l *Limiter) fromTrustedProxy(ip net.IP) bool {
	for _, ipnet := range l.proxies {
		if ipnet.Contains(ip) {
			return true
		}
	}
	return false
}

func parseProxies(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, entry := range entries {
		if _, ipnet, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, ipnet)
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			suffix := "/32"
			if ip.To4() == nil {
				suffix = "/128"
			}
			if _, ipnet, err := net.ParseCIDR(entry + suffix); err == nil {
				nets = append(nets, ipnet)
			}
		}
	}
	return nets
}

func parseAddr(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}
