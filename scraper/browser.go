// Package scraper drives a real Chromium via rod for the pages that refuse
// to render server-side, and orchestrates the full list → detail → record
// pipeline.
package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/algajon/autosallon/config"
	"github.com/algajon/autosallon/models"
)

// Browser owns the Chromium process and hands out prepared tabs from a
// bounded pool. Safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	pagePool rod.Pool[rod.Page]
	cfg      config.Browser
}

// NewBrowser launches a headless browser with the stealth flag set.
func NewBrowser(cfg config.Browser) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.DefaultProxy != "" {
		l = l.Proxy(cfg.DefaultProxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewHarvestError(models.ErrCodeBrowserCrash, "failed to launch browser", err)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewHarvestError(models.ErrCodeBrowserCrash, "failed to connect to browser", err)
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 4
	}
	pool := rod.NewPagePool(maxPages)
	slog.Info("page pool created", "maxPages", maxPages)

	return &Browser{browser: browser, pagePool: pool, cfg: cfg}, nil
}

// OpenPage navigates a fresh tab to targetURL and waits for the DOM to
// settle. Stealth JS is injected before navigation; injecting after would
// leave the automation markers visible to the page's first scripts.
func (b *Browser) OpenPage(ctx context.Context, targetURL string) (*LivePage, error) {
	page, err := b.pagePool.Get(func() (*rod.Page, error) {
		return b.browser.Page(proto.TargetCreateTarget{})
	})
	if err != nil {
		return nil, models.NewHarvestError(models.ErrCodeBrowserCrash, "failed to acquire page from pool", err)
	}
	p := page.Context(ctx)

	if _, err := p.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}

	if u, perr := url.Parse(targetURL); perr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{
				"Referer": "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname()),
			}),
		}.Call(p)
	}

	if err := p.Timeout(b.cfg.NavigationTimeout).Navigate(targetURL); err != nil {
		b.release(page)
		return nil, models.NewHarvestError(models.ErrCodeNavigation, "navigation failed", err)
	}
	if err := p.Timeout(b.cfg.NavigationTimeout).WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", err)
	}
	return &LivePage{page: p, release: func() { b.release(page) }}, nil
}

// release blanks a tab and returns it to the pool. Navigating to
// about:blank first drops the page's DOM so pooled tabs do not pin memory.
func (b *Browser) release(page *rod.Page) {
	if err := page.Navigate("about:blank"); err != nil {
		slog.Warn("cleanup: failed to navigate to about:blank", "error", err)
	}
	b.pagePool.Put(page)
}

// Close drains the page pool and kills the browser process. Call on
// graceful shutdown to prevent zombie Chrome processes.
func (b *Browser) Close() {
	slog.Info("browser shutting down: draining page pool")
	b.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	b.browser.MustClose()
	slog.Info("browser shutdown complete")
}
