package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/algajon/autosallon/cache"
	"github.com/algajon/autosallon/cascade"
	"github.com/algajon/autosallon/config"
	"github.com/algajon/autosallon/fetch"
	"github.com/algajon/autosallon/harvest"
	"github.com/algajon/autosallon/models"
	"github.com/algajon/autosallon/page"
	"github.com/algajon/autosallon/record"
	"github.com/algajon/autosallon/store"
)

// Runner walks the configured list pages, visits every discovered listing,
// and writes the merged records to the sink. One listing's failure never
// aborts the run; the outcome is fewer records, not a crash.
type Runner struct {
	cfg     config.Harvest
	browser *Browser
	fetcher *fetch.Fetcher
	ctrl    *cascade.Controller
	merger  *record.Merger
	sink    store.Sink
	limiter *rate.Limiter
	seen    *cache.Seen
	log     *slog.Logger
}

// NewRunner wires the pipeline. fetcher may be nil to disable the HTTP-first
// tier.
func NewRunner(cfg config.Harvest, browser *Browser, fetcher *fetch.Fetcher,
	ctrl *cascade.Controller, merger *record.Merger, sink store.Sink, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	rps := cfg.VisitRPS
	if rps <= 0 {
		rps = 0.5
	}
	return &Runner{
		cfg:     cfg,
		browser: browser,
		fetcher: fetcher,
		ctrl:    ctrl,
		merger:  merger,
		sink:    sink,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		seen:    cache.NewSeen(0, 0),
		log:     log,
	}
}

// Run processes every start URL until the listing cap or the page limit is
// reached. Returns the number of records written.
func (r *Runner) Run(ctx context.Context) (int, error) {
	written := 0
	for _, start := range r.cfg.StartURLs {
		for pageNo := 1; pageNo <= r.cfg.MaxPages; pageNo++ {
			if r.cfg.MaxListings > 0 && written >= r.cfg.MaxListings {
				return written, nil
			}
			n, more, err := r.runListPage(ctx, listPageURL(start, pageNo), written)
			written += n
			if err != nil {
				if ctx.Err() != nil {
					return written, ctx.Err()
				}
				r.log.Error("list page failed", "url", start, "page", pageNo, "error", err)
				break
			}
			if !more {
				break
			}
		}
	}
	return written, nil
}

// runListPage harvests one list page and visits its listings. Returns how
// many records it wrote and whether the walk should continue to the next
// page.
func (r *Runner) runListPage(ctx context.Context, pageURL string, alreadyWritten int) (int, bool, error) {
	lp, err := r.browser.OpenPage(ctx, pageURL)
	if err != nil {
		return 0, false, err
	}
	defer lp.Close()

	out, err := r.ctrl.Harvest(ctx, lp)
	if err != nil {
		return 0, false, err
	}
	if out.Final == cascade.StateExhausted {
		return 0, false, nil
	}

	written := 0
	for _, listing := range out.Listings {
		if r.cfg.MaxListings > 0 && alreadyWritten+written >= r.cfg.MaxListings {
			return written, false, nil
		}
		if !r.seen.Mark(listing.ID) {
			continue
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return written, false, err
		}
		cand, _ := out.Candidates.Get(listing.ID)
		if err := r.visitListing(ctx, listing, cand); err != nil {
			r.log.Warn("listing skipped", "id", listing.ID, "error", err)
			continue
		}
		written++
	}
	return written, true, nil
}

// visitListing acquires a detail snapshot (cheap HTTP first, browser tab on
// miss), extracts the raw fields, merges and persists.
func (r *Runner) visitListing(ctx context.Context, listing cascade.Listing, cand harvest.Candidate) error {
	hint := r.merger.HintFromCandidate(cand)

	raw, ok := r.detailViaHTTP(ctx, listing)
	if !ok {
		var err error
		raw, err = r.detailViaBrowser(ctx, listing)
		if err != nil {
			return err
		}
	}

	rec := r.merger.Merge(hint, raw, listing.URL)
	if err := r.sink.Write(&rec); err != nil {
		return err
	}
	r.log.Info("record written", "id", listing.ID, "price_eur", rec.PriceEUR)
	return nil
}

// detailViaHTTP tries the TLS-fingerprint fetch tier. A snapshot counts
// only when it actually carries identifiable detail content.
func (r *Runner) detailViaHTTP(ctx context.Context, listing cascade.Listing) (models.RawFieldSet, bool) {
	if !r.cfg.HTTPFirst || r.fetcher == nil {
		return models.RawFieldSet{}, false
	}
	snap, err := r.fetcher.Snapshot(ctx, listing.URL)
	if err != nil {
		r.log.Debug("http tier failed, escalating to browser", "id", listing.ID, "error", err)
		return models.RawFieldSet{}, false
	}
	raw, err := extractFromAccess(ctx, snap, listing.URL)
	if err != nil || !usableDetail(raw) {
		return models.RawFieldSet{}, false
	}
	return raw, true
}

func (r *Runner) detailViaBrowser(ctx context.Context, listing cascade.Listing) (models.RawFieldSet, error) {
	lp, err := r.browser.OpenPage(ctx, listing.URL)
	if err != nil {
		return models.RawFieldSet{}, err
	}
	defer lp.Close()
	return extractFromAccess(ctx, lp, listing.URL)
}

func extractFromAccess(ctx context.Context, pa page.Access, pageURL string) (models.RawFieldSet, error) {
	tree, hasTree, err := pa.EmbeddedState(ctx)
	if err != nil {
		return models.RawFieldSet{}, err
	}
	if !hasTree {
		tree = nil
	}
	rawHTML, err := pa.HTML(ctx)
	if err != nil {
		return models.RawFieldSet{}, err
	}
	return harvest.ExtractDetail(ctx, tree, rawHTML, pageURL), nil
}

// usableDetail reports whether a static fetch produced enough to skip the
// browser: an identity plus at least one substantive field.
func usableDetail(raw models.RawFieldSet) bool {
	if raw.CarID == "" {
		return false
	}
	return raw.Model != "" || raw.PriceText != "" || raw.AdPrice != nil ||
		raw.Mileage != "" || len(raw.Images) > 0
}

// listPageURL appends the page number to a search URL.
func listPageURL(start string, pageNo int) string {
	if pageNo <= 1 {
		return start
	}
	sep := "?"
	if strings.Contains(start, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", start, sep, pageNo)
}
