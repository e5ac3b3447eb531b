// Package cascade drives list-page harvesting through a ladder of fallback
// sources. Each rung is tried only when the rungs above it produced
// nothing, and a hostile interstitial found at a rung entry backs the
// ladder off before that rung runs.
package cascade

import (
	"context"
	"log/slog"
	"math/rand"
	"regexp"
	"time"

	"github.com/algajon/autosallon/harvest"
	"github.com/algajon/autosallon/identity"
	"github.com/algajon/autosallon/page"
)

// State names the rung the cascade ended on.
type State string

const (
	StateInit           State = "INIT"
	StateRowsPresent    State = "ROWS_PRESENT"
	StateStateFallback  State = "STATE_FALLBACK"
	StateDOMFallback    State = "DOM_FALLBACK"
	StateIframeFallback State = "IFRAME_FALLBACK"
	StateExhausted      State = "EXHAUSTED"
)

// hostileRx matches bot-wall and interstitial wording in both locales.
var hostileRx = regexp.MustCompile(`(?i)unusual traffic|verify you are human|are you a robot|봇이|자동화|차단되었습니다|보안 인증|접근이 제한|captcha|cloudflare|access denied`)

// Config tunes the cascade. Zero values fall back to the defaults below.
type Config struct {
	// MaxRetries bounds bot-wall retry attempts per page.
	MaxRetries int
	// BackoffBase is the first retry delay; each retry doubles it up to
	// BackoffCap.
	BackoffBase time.Duration
	BackoffCap  time.Duration
	// MaxLoadMore bounds load-more stimulation rounds on the DOM rung.
	MaxLoadMore int
	// MaxListings caps how many listings one page may yield. Zero means
	// no cap.
	MaxListings int
}

func (c Config) withDefaults() Config {
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.BackoffBase == 0 {
		c.BackoffBase = 2 * time.Second
	}
	if c.BackoffCap == 0 {
		c.BackoffCap = 30 * time.Second
	}
	if c.MaxLoadMore == 0 {
		c.MaxLoadMore = 8
	}
	return c
}

// Listing is one resolved list-page entry: the id plus the URL to visit.
type Listing struct {
	ID  string
	URL string
}

// Outcome reports what a cascade pass produced. Final is always a
// terminal: ROWS_PRESENT when any rung yielded, EXHAUSTED otherwise.
// Path records every state entered, terminal included.
type Outcome struct {
	Final    State
	Path     []State
	Listings []Listing
	// Candidates retains the merged per-id observations for hint building.
	Candidates *harvest.Candidates
}

// Controller runs the fallback ladder over one list page at a time. Safe
// for sequential reuse; not safe for concurrent use.
type Controller struct {
	cfg Config
	log *slog.Logger

	// test seams
	sleep  func(context.Context, time.Duration)
	jitter func(time.Duration) time.Duration
}

// New builds a Controller. A nil logger uses the process default.
func New(cfg Config, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		cfg:    cfg.withDefaults(),
		log:    log,
		sleep:  sleepCtx,
		jitter: addJitter,
	}
}

// Harvest runs the ladder over pa and returns the merged listings. Each
// rung is attempted only when every rung above it yielded nothing, and the
// hostile gate runs at every rung entry. The returned error is non-nil
// only for context cancellation; a page that stayed hostile through every
// retry ends in EXHAUSTED with zero listings.
func (c *Controller) Harvest(ctx context.Context, pa page.Access) (Outcome, error) {
	out := Outcome{Final: StateInit, Candidates: harvest.NewCandidates()}

	rungs := []struct {
		state State
		run   func() *harvest.Candidates
	}{
		// Rendered rows or detail-like links already on the page.
		{StateInit, func() *harvest.Candidates {
			cs, err := harvest.HarvestDOM(ctx, pa)
			if err != nil {
				return nil
			}
			return cs
		}},
		// Embedded state tree.
		{StateStateFallback, func() *harvest.Candidates {
			tree, ok, err := pa.EmbeddedState(ctx)
			if err != nil || !ok {
				return nil
			}
			return harvest.HarvestState(tree)
		}},
		// DOM rescan, stimulated to load more while it grows.
		{StateDOMFallback, func() *harvest.Candidates {
			cs, err := c.harvestDOMGrowing(ctx, pa)
			if err != nil {
				return nil
			}
			return cs
		}},
		// Same-origin child frames.
		{StateIframeFallback, func() *harvest.Candidates {
			cs, err := harvest.HarvestFrames(ctx, pa)
			if err != nil {
				return nil
			}
			return cs
		}},
	}

	for _, r := range rungs {
		out.Path = append(out.Path, r.state)
		hostile, err := c.guardHostile(ctx, pa)
		if err != nil {
			out.Final = StateExhausted
			out.Path = append(out.Path, StateExhausted)
			return out, err
		}
		if hostile {
			// The ceiling ran out; this rung yields nothing.
			c.log.Warn("bot wall persisted through retries",
				"url", pa.CurrentURL(), "state", string(r.state))
			continue
		}
		if cs := r.run(); cs != nil && cs.Len() > 0 {
			out.Candidates.Merge(cs)
			break
		}
	}

	if out.Candidates.Len() == 0 {
		out.Final = StateExhausted
		out.Path = append(out.Path, StateExhausted)
		c.log.Warn("cascade exhausted", "url", pa.CurrentURL())
		return out, nil
	}

	out.Final = StateRowsPresent
	out.Path = append(out.Path, StateRowsPresent)
	for _, cand := range out.Candidates.List() {
		if c.cfg.MaxListings > 0 && len(out.Listings) >= c.cfg.MaxListings {
			break
		}
		out.Listings = append(out.Listings, Listing{
			ID:  cand.ID,
			URL: identity.ListingURL(cand.ID),
		})
	}
	c.log.Info("cascade done",
		"url", pa.CurrentURL(), "state", string(out.Final), "listings", len(out.Listings))
	return out, nil
}

// guardHostile checks the rendered text for a bot wall at a rung entry and
// backs off with retries while one is up, re-reading the text after each
// wait. It reports true when the wall outlasted the retry ceiling; the
// error is context cancellation only. A page whose text cannot be read is
// not treated as hostile; the rung's own reads surface the problem as an
// empty yield.
func (c *Controller) guardHostile(ctx context.Context, pa page.Access) (bool, error) {
	delay := c.cfg.BackoffBase
	for attempt := 0; ; attempt++ {
		text, err := pa.RenderedText(ctx)
		if err != nil {
			c.log.Debug("rendered text unavailable for hostile check", "error", err)
			return false, nil
		}
		if !hostileRx.MatchString(text) {
			return false, nil
		}
		if attempt >= c.cfg.MaxRetries {
			return true, nil
		}
		wait := c.jitter(delay)
		c.log.Warn("bot wall detected, backing off",
			"url", pa.CurrentURL(), "attempt", attempt+1, "wait", wait)
		c.sleep(ctx, wait)
		if err := ctx.Err(); err != nil {
			return true, err
		}
		delay *= 2
		if delay > c.cfg.BackoffCap {
			delay = c.cfg.BackoffCap
		}
	}
}

// harvestDOMGrowing harvests DOM rows, and when the page can load more,
// keeps stimulating it until the row count stops growing.
func (c *Controller) harvestDOMGrowing(ctx context.Context, pa page.Access) (*harvest.Candidates, error) {
	cs, err := harvest.HarvestDOM(ctx, pa)
	if err != nil {
		return cs, err
	}
	loader, ok := pa.(page.Loader)
	if !ok {
		return cs, nil
	}
	for round := 0; round < c.cfg.MaxLoadMore; round++ {
		if c.cfg.MaxListings > 0 && cs.Len() >= c.cfg.MaxListings {
			break
		}
		grew, err := loader.LoadMore(ctx)
		if err != nil || !grew {
			break
		}
		more, err := harvest.HarvestDOM(ctx, pa)
		if err != nil {
			break
		}
		before := cs.Len()
		cs.Merge(more)
		if cs.Len() == before {
			break
		}
	}
	return cs, nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// addJitter spreads retries by up to 25% so parallel workers desynchronize.
func addJitter(d time.Duration) time.Duration {
	return d + time.Duration(rand.Int63n(int64(d)/4+1))
}
