package cascade

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/algajon/autosallon/page"
)

// fakePage is a scriptable Access/Loader for exercising the ladder.
type fakePage struct {
	url    string
	texts  []string // consumed per RenderedText call; last repeats
	html   string
	state  any
	frames []page.Access

	loadMoreLeft int
	textCalls    int
}

func (f *fakePage) CurrentURL() string { return f.url }

func (f *fakePage) RenderedText(ctx context.Context) (string, error) {
	i := f.textCalls
	if i >= len(f.texts) {
		i = len(f.texts) - 1
	}
	f.textCalls++
	if i < 0 {
		return "", nil
	}
	return f.texts[i], nil
}

func (f *fakePage) HTML(ctx context.Context) (string, error) { return f.html, nil }

func (f *fakePage) EmbeddedState(ctx context.Context) (any, bool, error) {
	return f.state, f.state != nil, nil
}

func (f *fakePage) QueryOuterHTML(ctx context.Context, selector string) ([]string, error) {
	snap, err := page.NewSnapshot(f.url, f.html)
	if err != nil {
		return nil, err
	}
	return snap.QueryOuterHTML(ctx, selector)
}

func (f *fakePage) Frames(ctx context.Context) ([]page.Access, error) { return f.frames, nil }

func (f *fakePage) LoadMore(ctx context.Context) (bool, error) {
	if f.loadMoreLeft <= 0 {
		return false, nil
	}
	f.loadMoreLeft--
	f.html += `<a href="/cars/detail/40005555">loaded</a>`
	return true, nil
}

func quiet(cfg Config) *Controller {
	c := New(cfg, nil)
	c.sleep = func(context.Context, time.Duration) {}
	c.jitter = func(d time.Duration) time.Duration { return d }
	return c
}

func TestHarvestRowsPresent(t *testing.T) {
	// Rows render, so the cascade terminates at the first rung; the
	// tree-only id must not leak into the listings.
	fp := &fakePage{
		url:   "https://fem.encar.com/cars/search",
		texts: []string{"결과 170,000건"},
		state: map[string]any{
			"list": []any{map[string]any{"carid": "99999999", "carName": "기아 쏘렌토"}},
		},
		html: `<html><body><tbody id="sr_normal">
<tr data-index="0"><td class="inf"><a href="/cars/detail/39481726">기아 쏘렌토</a></td><td class="prc">2,950만원</td></tr>
<tr data-index="1"><td class="inf"><a href="/cars/detail/40001111">현대 그랜저</a></td><td class="prc">3,200만원</td></tr>
</tbody></body></html>`,
	}
	out, err := quiet(Config{}).Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if out.Final != StateRowsPresent {
		t.Errorf("Final = %s, want ROWS_PRESENT", out.Final)
	}
	wantPath := []State{StateInit, StateRowsPresent}
	if !reflect.DeepEqual(out.Path, wantPath) {
		t.Errorf("Path = %v, want %v", out.Path, wantPath)
	}
	if len(out.Listings) != 2 {
		t.Fatalf("listings = %v", out.Listings)
	}
	if out.Listings[0].ID != "39481726" || out.Listings[1].ID != "40001111" {
		t.Errorf("listings = %v", out.Listings)
	}
	if out.Listings[0].URL != "https://fem.encar.com/cars/detail/39481726" {
		t.Errorf("listing URL = %s", out.Listings[0].URL)
	}
}

func TestHarvestStateFallback(t *testing.T) {
	fp := &fakePage{
		url:   "https://fem.encar.com/cars/search",
		texts: []string{"ok"},
		state: map[string]any{"carid": "39481726"},
		html:  "<html><body>no rows here</body></html>",
	}
	out, err := quiet(Config{}).Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if out.Final != StateRowsPresent {
		t.Errorf("Final = %s, want ROWS_PRESENT", out.Final)
	}
	wantPath := []State{StateInit, StateStateFallback, StateRowsPresent}
	if !reflect.DeepEqual(out.Path, wantPath) {
		t.Errorf("Path = %v, want %v", out.Path, wantPath)
	}
	if len(out.Listings) != 1 || out.Listings[0].ID != "39481726" {
		t.Errorf("listings = %v", out.Listings)
	}
}

func TestHarvestExhausted(t *testing.T) {
	fp := &fakePage{
		url:   "https://fem.encar.com/cars/search",
		texts: []string{"empty"},
		html:  "<html><body>nothing</body></html>",
	}
	out, err := quiet(Config{}).Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if out.Final != StateExhausted || len(out.Listings) != 0 {
		t.Errorf("out = %+v", out)
	}
	wantPath := []State{StateInit, StateStateFallback, StateDOMFallback, StateIframeFallback, StateExhausted}
	if !reflect.DeepEqual(out.Path, wantPath) {
		t.Errorf("Path = %v, want %v", out.Path, wantPath)
	}
}

func TestHarvestIframeFallback(t *testing.T) {
	inner, err := page.NewSnapshot("https://fem.encar.com/cars/search",
		`<html><body><a href="/cars/detail/50001111">framed</a></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	fp := &fakePage{
		url:    "https://fem.encar.com/cars/search",
		texts:  []string{"shell"},
		html:   "<html><body><iframe></iframe></body></html>",
		frames: []page.Access{inner},
	}
	out, err := quiet(Config{}).Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if out.Final != StateRowsPresent {
		t.Errorf("Final = %s, want ROWS_PRESENT", out.Final)
	}
	wantPath := []State{StateInit, StateStateFallback, StateDOMFallback, StateIframeFallback, StateRowsPresent}
	if !reflect.DeepEqual(out.Path, wantPath) {
		t.Errorf("Path = %v, want %v", out.Path, wantPath)
	}
	if len(out.Listings) != 1 || out.Listings[0].ID != "50001111" {
		t.Errorf("listings = %v", out.Listings)
	}
}

func TestBotWallRecovers(t *testing.T) {
	fp := &fakePage{
		url:   "https://fem.encar.com/cars/search",
		texts: []string{"verify you are human", "verify you are human", "ok now"},
		html:  `<html><body><a href="/cars/detail/39481726">x</a></body></html>`,
	}
	var waits []time.Duration
	c := quiet(Config{MaxRetries: 3, BackoffBase: time.Second, BackoffCap: 10 * time.Second})
	c.sleep = func(_ context.Context, d time.Duration) { waits = append(waits, d) }
	out, err := c.Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Listings) != 1 {
		t.Errorf("listings = %v", out.Listings)
	}
	if len(waits) != 2 || waits[0] != time.Second || waits[1] != 2*time.Second {
		t.Errorf("waits = %v", waits)
	}
}

func TestBotWallPersists(t *testing.T) {
	fp := &fakePage{
		url:   "https://fem.encar.com/cars/search",
		texts: []string{"보안 인증이 필요합니다"},
		html:  "<html></html>",
	}
	out, err := quiet(Config{MaxRetries: 2}).Harvest(context.Background(), fp)
	if err != nil {
		t.Fatalf("a persistent bot wall is not an error: %v", err)
	}
	if out.Final != StateExhausted || len(out.Listings) != 0 {
		t.Errorf("out = %+v, want EXHAUSTED with zero listings", out)
	}
}

func TestBackoffCeiling(t *testing.T) {
	fp := &fakePage{
		url:   "https://fem.encar.com/cars/search",
		texts: []string{"captcha"},
		html:  "<html></html>",
	}
	var waits []time.Duration
	c := quiet(Config{MaxRetries: 5, BackoffBase: 4 * time.Second, BackoffCap: 8 * time.Second})
	c.sleep = func(_ context.Context, d time.Duration) { waits = append(waits, d) }
	out, err := c.Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if out.Final != StateExhausted {
		t.Errorf("Final = %s, want EXHAUSTED", out.Final)
	}
	if len(waits) == 0 {
		t.Fatal("expected backoff waits")
	}
	for _, w := range waits {
		if w > 8*time.Second {
			t.Errorf("wait %v exceeds ceiling", w)
		}
	}
}

func TestLoadMoreGrowsRows(t *testing.T) {
	// No rows and no state: the DOM rung stimulates the page until the
	// loaded row appears.
	fp := &fakePage{
		url:          "https://fem.encar.com/cars/search",
		texts:        []string{"ok"},
		html:         `<html><body>loading</body></html>`,
		loadMoreLeft: 1,
	}
	out, err := quiet(Config{}).Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if out.Final != StateRowsPresent {
		t.Errorf("Final = %s, want ROWS_PRESENT", out.Final)
	}
	wantPath := []State{StateInit, StateStateFallback, StateDOMFallback, StateRowsPresent}
	if !reflect.DeepEqual(out.Path, wantPath) {
		t.Errorf("Path = %v, want %v", out.Path, wantPath)
	}
	if len(out.Listings) != 1 || out.Listings[0].ID != "40005555" {
		t.Errorf("listings = %v, want loaded row included", out.Listings)
	}
}

func TestMaxListingsCap(t *testing.T) {
	fp := &fakePage{
		url:   "https://fem.encar.com/cars/search",
		texts: []string{"ok"},
		html: `<html><body>
<a href="/cars/detail/40000001">a</a>
<a href="/cars/detail/40000002">b</a>
<a href="/cars/detail/40000003">c</a>
</body></html>`,
	}
	out, err := quiet(Config{MaxListings: 2}).Harvest(context.Background(), fp)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Listings) != 2 {
		t.Errorf("listings = %d, want 2", len(out.Listings))
	}
}
