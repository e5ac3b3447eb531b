package harvest

import (
	"context"

	"github.com/algajon/autosallon/page"
)

// HarvestFrames runs the state and DOM harvests over the page's child
// frames and merges the results. Depth is one level.
func HarvestFrames(ctx context.Context, pa page.Access) (*Candidates, error) {
	cs := NewCandidates()
	frames, err := pa.Frames(ctx)
	if err != nil {
		return cs, err
	}
	for _, f := range frames {
		if tree, ok, err := f.EmbeddedState(ctx); err == nil && ok {
			cs.Merge(HarvestState(tree))
		}
		if dom, err := HarvestDOM(ctx, f); err == nil {
			cs.Merge(dom)
		}
	}
	return cs, nil
}
