package fetch

import (
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// NewPublic returns a Client for fetching URLs chosen by untrusted callers.
// It only connects to public unicast addresses, so loopback, private and
// link-local targets (cloud metadata endpoints included) are refused after
// DNS resolution, and it stops reading after maxBytes. Proxies from the
// environment are ignored since they would hide the real destination.
func NewPublic(userAgent string, maxBytes int64) *Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   publicOnly,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &Client{
		HTTP:      &http.Client{Timeout: DefaultTimeout, Transport: transport},
		UserAgent: userAgent,
		MaxBytes:  maxBytes,
	}
}

func publicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return errors.Wrapf(err, "parsing dial address %q", address)
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return errors.Errorf("refusing to connect to non-public address %s", host)
	}
	return nil
}

func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast())
}
