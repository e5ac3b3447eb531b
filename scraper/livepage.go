package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/algajon/autosallon/page"
)

// LivePage adapts one rod tab to the page.Access surface. It also
// implements page.Loader: list pages grow under scroll stimulation.
type LivePage struct {
	page    *rod.Page
	release func()
}

var (
	_ page.Access = (*LivePage)(nil)
	_ page.Loader = (*LivePage)(nil)
)

func (l *LivePage) CurrentURL() string {
	info, err := l.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (l *LivePage) RenderedText(ctx context.Context) (string, error) {
	res, err := l.page.Context(ctx).Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (l *LivePage) HTML(ctx context.Context) (string, error) {
	return l.page.Context(ctx).HTML()
}

// stateProbeJS serializes whichever embedded state global the page carries.
// JSON round-tripping in page context strips functions and cycles before
// the tree crosses the CDP boundary.
const stateProbeJS = `() => {
	const roots = [window.__PRELOADED_STATE__, window.__NEXT_DATA__, window.__NUXT__];
	for (const r of roots) {
		if (r && typeof r === "object") {
			try { return JSON.stringify(r); } catch (e) {}
		}
	}
	return "";
}`

func (l *LivePage) EmbeddedState(ctx context.Context) (any, bool, error) {
	res, err := l.page.Context(ctx).Eval(stateProbeJS)
	if err != nil {
		return nil, false, err
	}
	raw := res.Value.Str()
	if raw == "" {
		return nil, false, nil
	}
	tree := gson.NewFrom(raw).Val()
	if tree == nil {
		return nil, false, nil
	}
	return tree, true, nil
}

func (l *LivePage) QueryOuterHTML(ctx context.Context, selector string) ([]string, error) {
	els, err := l.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		h, err := el.HTML()
		if err != nil {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// Frames wraps same-origin iframes. Cross-origin frames error on access and
// are skipped.
func (l *LivePage) Frames(ctx context.Context) ([]page.Access, error) {
	els, err := l.page.Context(ctx).Elements("iframe")
	if err != nil {
		return nil, err
	}
	var out []page.Access
	for _, el := range els {
		fp, err := el.Frame()
		if err != nil {
			slog.Debug("skipping inaccessible frame", "error", err)
			continue
		}
		out = append(out, &LivePage{page: fp})
	}
	return out, nil
}

// LoadMore scrolls to the bottom and reports whether the document grew.
func (l *LivePage) LoadMore(ctx context.Context) (bool, error) {
	p := l.page.Context(ctx)
	before, err := docHeight(p)
	if err != nil {
		return false, err
	}
	if _, err := p.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		return false, err
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("scroll settle did not converge", "error", err)
	}
	after, err := docHeight(p)
	if err != nil {
		return false, err
	}
	return after > before, nil
}

func docHeight(p *rod.Page) (int, error) {
	res, err := p.Eval(`() => document.body ? document.body.scrollHeight : 0`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// Close returns the tab to the pool. Frame-backed pages have no release
// hook; their lifetime is their parent's.
func (l *LivePage) Close() {
	if l.release != nil {
		l.release()
	}
}

// toHeadersMap converts a plain string map to the CDP header value shape.
func toHeadersMap(h map[string]string) map[string]gson.JSON {
	m := make(map[string]gson.JSON, len(h))
	for k, v := range h {
		m[k] = gson.New(v)
	}
	return m
}
