package harvest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/algajon/autosallon/identity"
	"github.com/algajon/autosallon/money"
	"github.com/algajon/autosallon/treescan"
)

var stateIDKeyRx = regexp.MustCompile(`(?i)^car\s*(id|no|seq)$|^(carid|carno|carseq|car_id|car_no|car_seq|cid)$`)

var stateTitleKeys = []string{"carName", "car_name", "title", "name", "modelName"}
var statePriceKeys = []string{"priceText", "price_text", "displayPrice"}
var statePriceNumKeys = []string{"price", "salePrice", "sale_price", "listPrice", "list_price", "advPrice"}

// HarvestState walks an embedded state tree and collects every object that
// carries a listing id, pairing it with whatever title and price fields sit
// in the same object.
func HarvestState(tree any) *Candidates {
	cs := NewCandidates()
	if tree == nil {
		return cs
	}
	treescan.EachObject(tree, func(obj map[string]any) bool {
		id := ""
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if stateIDKeyRx.MatchString(strings.TrimSpace(k)) {
				if cand := strings.TrimSpace(treescan.Text(obj[k])); identity.Valid(cand) {
					id = cand
					break
				}
			}
		}
		if id == "" {
			return true
		}
		c := Candidate{ID: id}
		for _, k := range stateTitleKeys {
			if v, ok := lookupKey(obj, k); ok {
				if t := strings.TrimSpace(treescan.Text(v)); t != "" {
					c.Title = t
					break
				}
			}
		}
		for _, k := range statePriceKeys {
			if v, ok := lookupKey(obj, k); ok {
				if t := strings.TrimSpace(treescan.Text(v)); t != "" {
					c.PriceText = t
					break
				}
			}
		}
		for _, k := range statePriceNumKeys {
			if v, ok := lookupKey(obj, k); ok {
				if f, fOK := money.CoerceFloat(v); fOK && f > 0 {
					c.PriceNum = f
					c.HasPrice = true
					break
				}
			}
		}
		cs.Add(c)
		return true
	})
	return cs
}

// lookupKey finds a key in obj case-insensitively.
func lookupKey(obj map[string]any, key string) (any, bool) {
	if v, ok := obj[key]; ok {
		return v, true
	}
	lower := strings.ToLower(key)
	for k, v := range obj {
		if strings.ToLower(k) == lower {
			return v, true
		}
	}
	return nil, false
}
