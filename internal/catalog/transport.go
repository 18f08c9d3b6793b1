package catalog

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	// registers the socks4/socks4a schemes with proxy.FromURL
	_ "github.com/bdandy/go-socks4"
	"golang.org/x/net/proxy"
)

// NewHTTPClient returns the client the catalogs share. proxyStr may be empty,
// or an http(s)://, socks5:// or socks4:// URL.
func NewHTTPClient(timeout time.Duration, proxyStr string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyStr != "" {
		proxyURL, err := url.Parse(proxyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", proxyStr, err)
		}

		switch proxyURL.Scheme {
		case "http", "https":
			transport.Proxy = http.ProxyURL(proxyURL)
		case "socks5", "socks4", "socks4a":
			dialer, err := proxy.FromURL(proxyURL, &net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			})
			if err != nil {
				return nil, fmt.Errorf("%s dialer: %w", proxyURL.Scheme, err)
			}
			transport.Proxy = nil
			transport.DialContext = dialContext(dialer)
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", proxyURL.Scheme)
		}
	}

	return &http.Client{Timeout: timeout, Transport: transport}, nil
}

func dialContext(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}
