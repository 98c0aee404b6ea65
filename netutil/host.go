package netutil

import (
	"net"
	"os"
)

// LocalHostAddress returns the IPv4 address the local host name resolves to.
// If the host name cannot be resolved, the IP of fallback (usually a
// connection's local address) is returned.
func LocalHostAddress(fallback net.Addr) string {
	if name, err := os.Hostname(); err == nil {
		if ips, err := net.LookupIP(name); err == nil {
			for _, ip := range ips {
				if v4 := ip.To4(); v4 != nil {
					return v4.String()
				}
			}
			if len(ips) > 0 {
				return ips[0].String()
			}
		}
	}
	return AddrIP(fallback)
}

// AddrIP returns the host part of addr, or "" if addr is nil.
func AddrIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
