package identity

import (
	"net/url"
	"strings"
)

const photoHost = "https://ci.encar.com"

// NormalizeImageURL absolutizes a photo reference. Protocol-relative and
// host-relative paths are anchored on the CDN host; anything that is not a
// photo-looking URL returns "".
func NormalizeImageURL(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "//"):
		return "https:" + s
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return s
	case strings.HasPrefix(s, "/"):
		return photoHost + s
	}
	return ""
}

// UpgradeImageURL strips the resize query from CDN photo URLs so the
// original full-size asset is referenced. Non-CDN URLs pass through.
func UpgradeImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.Contains(u.Path, "carpicture") {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// UpgradeImageURLs normalizes, upgrades and de-duplicates a photo list,
// preserving first-seen order.
func UpgradeImageURLs(raws []string) []string {
	seen := make(map[string]struct{}, len(raws))
	out := make([]string, 0, len(raws))
	for _, r := range raws {
		u := NormalizeImageURL(r)
		if u == "" {
			continue
		}
		u = UpgradeImageURL(u)
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
