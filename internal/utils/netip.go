package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// proxyHeaders are consulted in order when the server sits behind a trusted proxy.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// HostOnly strips the port from "host:port" or "[v6]:port". Other input is returned as is.
func HostOnly(s string) string {
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// ClientAddr returns the visitor's address. Proxy headers are only honored
// with trustProxy; X-Forwarded-For contributes its left-most entry.
// The zero Addr is returned when nothing parses.
func ClientAddr(r *http.Request, trustProxy bool) netip.Addr {
	if trustProxy {
		for _, h := range proxyHeaders {
			v := r.Header.Get(h)
			if h == "X-Forwarded-For" {
				v, _, _ = strings.Cut(v, ",")
			}
			if addr, ok := parseAddr(v); ok {
				return addr
			}
		}
	}
	addr, _ := parseAddr(r.RemoteAddr)
	return addr
}

// ClientIP is ClientAddr as a string, falling back to the raw remote host.
func ClientIP(r *http.Request, trustProxy bool) string {
	if addr := ClientAddr(r, trustProxy); addr.IsValid() {
		return addr.String()
	}
	return HostOnly(r.RemoteAddr)
}

func parseAddr(s string) (netip.Addr, bool) {
	s = HostOnly(strings.TrimSpace(s))
	if s == "" {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// Networks is a list of prefixes; a bare address is stored as a single-host prefix.
type Networks []netip.Prefix

// ParseNetworks parses CIDRs and addresses. Entries that parse as neither are
// returned in rejected so callers can report the misconfiguration.
func ParseNetworks(list []string) (nets Networks, rejected []string) {
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			nets = append(nets, p.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(s); err == nil {
			addr = addr.Unmap()
			nets = append(nets, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		rejected = append(rejected, s)
	}
	return nets, rejected
}

// Contains reports whether addr falls in any of the networks.
func (n Networks) Contains(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}
	addr = addr.Unmap()
	for _, p := range n {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
