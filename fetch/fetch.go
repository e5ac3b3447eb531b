// Package fetch retrieves pages over plain HTTP with a Chrome TLS
// fingerprint. It is the cheap first tier: detail pages that render
// server-side skip the browser entirely, and the runner escalates to a
// real browser tab only when the static document yields nothing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	tls2 "github.com/refraction-networking/utls"
	xproxy "golang.org/x/net/proxy"

	"github.com/algajon/autosallon/models"
	"github.com/algajon/autosallon/page"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const maxBodySize = 10 * 1024 * 1024

// Fetcher performs HTTP requests with a Chrome TLS fingerprint (utls).
type Fetcher struct {
	defaultProxy string
}

// New creates a Fetcher. proxy may be empty.
func New(proxy string) *Fetcher {
	return &Fetcher{defaultProxy: proxy}
}

// Snapshot fetches targetURL and parses the body into a static page view.
func (f *Fetcher) Snapshot(ctx context.Context, targetURL string) (*page.Snapshot, error) {
	body, err := f.fetch(ctx, targetURL)
	if err != nil {
		return nil, err
	}
	return page.NewSnapshot(targetURL, string(body))
}

func (f *Fetcher) fetch(ctx context.Context, targetURL string) ([]byte, error) {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialTLSChrome(ctx, network, addr, f.defaultProxy)
		},
	}
	if f.defaultProxy != "" {
		proxyURL, err := url.Parse(f.defaultProxy)
		if err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, models.NewHarvestError(models.ErrCodeFetch, "build request", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, models.NewHarvestError(models.ErrCodeFetch, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, models.NewHarvestError(models.ErrCodeFetch,
			fmt.Sprintf("HTTP %d for %s", resp.StatusCode, targetURL), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, models.NewHarvestError(models.ErrCodeFetch, "read body", err)
	}
	return body, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via
// utls. A socks5/socks5h proxy is negotiated before the handshake so the
// proxy tunnels to the target rather than terminating the TLS itself.
func dialTLSChrome(ctx context.Context, network, addr, proxyAddr string) (net.Conn, error) {
	var rawConn net.Conn
	var err error

	dialer := &net.Dialer{}

	if proxyAddr != "" {
		proxyURL, parseErr := url.Parse(proxyAddr)
		if parseErr == nil && (proxyURL.Scheme == "socks5" || proxyURL.Scheme == "socks5h") {
			sd, sErr := socksDialer(proxyURL, dialer)
			if sErr != nil {
				return nil, fmt.Errorf("socks5 proxy: %w", sErr)
			}
			rawConn, err = sd.DialContext(ctx, network, addr)
			if err != nil {
				return nil, fmt.Errorf("socks5 dial: %w", err)
			}
		}
	}

	if rawConn == nil {
		rawConn, err = dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName:         host,
		InsecureSkipVerify: false,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// socksDialer builds a context-aware SOCKS5 dialer for proxyURL, carrying
// its userinfo as proxy credentials.
func socksDialer(proxyURL *url.URL, forward *net.Dialer) (xproxy.ContextDialer, error) {
	var auth *xproxy.Auth
	if u := proxyURL.User; u != nil {
		pw, _ := u.Password()
		auth = &xproxy.Auth{User: u.Username(), Password: pw}
	}
	d, err := xproxy.SOCKS5("tcp", proxyURL.Host, auth, forward)
	if err != nil {
		return nil, err
	}
	cd, ok := d.(xproxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks5 dialer for %s lacks context support", proxyURL.Host)
	}
	return cd, nil
}
