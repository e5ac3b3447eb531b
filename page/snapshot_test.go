package page

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

const listFixture = `<!DOCTYPE html><html><head>
<script>window.__PRELOADED_STATE__ = {"cars":{"list":[{"carid":"39481726","carName":"기아 쏘렌토"}]},"flag":true};window.other=1;</script>
</head><body>
<table><tbody id="sr_normal">
<tr data-index="0"><td class="inf"><a href="/cars/detail/39481726">기아 쏘렌토</a></td><td class="prc">2,950만원</td></tr>
</tbody></table>
<iframe srcdoc="&lt;html&gt;&lt;body&gt;&lt;a href='/cars/detail/40001111'&gt;row&lt;/a&gt;&lt;/body&gt;&lt;/html&gt;"></iframe>
</body></html>`

func TestSnapshotEmbeddedState(t *testing.T) {
	s, err := NewSnapshot("https://fem.encar.com/cars/search", listFixture)
	if err != nil {
		t.Fatal(err)
	}
	tree, ok, err := s.EmbeddedState(context.Background())
	if err != nil || !ok {
		t.Fatalf("EmbeddedState ok=%v err=%v", ok, err)
	}
	root, ok := tree.(map[string]any)
	if !ok {
		t.Fatalf("state root is %T", tree)
	}
	if root["flag"] != true {
		t.Error("state lost trailing fields")
	}
}

func TestSnapshotNoState(t *testing.T) {
	s, err := NewSnapshot("https://example.com", "<html><body>hi</body></html>")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.EmbeddedState(context.Background()); ok {
		t.Error("EmbeddedState reported state on a plain page")
	}
}

func TestSnapshotQueryOuterHTML(t *testing.T) {
	s, err := NewSnapshot("https://fem.encar.com/cars/search", listFixture)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	rows, err := s.QueryOuterHTML(ctx, `tbody#sr_normal tr[data-index]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || !strings.Contains(rows[0], "39481726") {
		t.Errorf("rows = %v", rows)
	}
	if _, err := s.QueryOuterHTML(ctx, `td[`); err == nil {
		t.Error("invalid selector did not error")
	}
}

func TestSnapshotFrames(t *testing.T) {
	s, err := NewSnapshot("https://fem.encar.com/cars/search", listFixture)
	if err != nil {
		t.Fatal(err)
	}
	frames, err := s.Frames(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	h, err := frames[0].HTML(context.Background())
	if err != nil || !strings.Contains(h, "40001111") {
		t.Errorf("frame html = %q err=%v", h, err)
	}
}

func TestSnapshotRenderedText(t *testing.T) {
	s, err := NewSnapshot("https://example.com", "<html><body><p>one</p>\n\n\n<p>two   words</p></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	text, err := s.RenderedText(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "one") || !strings.Contains(text, "two words") {
		t.Errorf("text = %q", text)
	}
}

func TestSnapshotConcurrentReads(t *testing.T) {
	s, err := NewSnapshot("https://fem.encar.com/cars/search", listFixture)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := s.RenderedText(context.Background())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.RenderedText(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- fmt.Errorf("text diverged: %q", got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestBalancedJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1};rest`, `{"a":1}`, true},
		{`{"a":"b}c"}`, `{"a":"b}c"}`, true},
		{`{"a":{"b":[1,2]}}tail`, `{"a":{"b":[1,2]}}`, true},
		{`{"a":1`, "", false},
		{`notjson`, "", false},
	}
	for _, tt := range tests {
		got, ok := balancedJSON(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("balancedJSON(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
