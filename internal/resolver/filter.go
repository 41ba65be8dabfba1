package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

// Document assets that are never worth expanding
var assetPattern = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|pdf|svg)$`)

// Link texts that are bare counters or years (e.g. "2", "1998")
var numericTextPattern = regexp.MustCompile(`^\d+$`)

// DefaultReservedMarkers are wiki namespaces that never lead to articles
var DefaultReservedMarkers = []string{
	"Istimewa:",
	"Bantuan:",
	"Kategori:",
	"Special:",
	"Help:",
	"Category:",
}

// Filter decides which anchors on a page become graph edges
type Filter struct {
	reserved []string
}

// NewFilter creates a link filter with the given reserved namespace markers
func NewFilter(reserved []string) *Filter {
	return &Filter{reserved: reserved}
}

// Normalize resolves href against base and strips the fragment.
// Returns false for anything that is not an http(s) URL on base's origin.
func Normalize(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	if !strings.EqualFold(abs.Host, base.Host) {
		return "", false
	}

	abs.Fragment = ""
	abs.RawFragment = ""
	return abs.String(), true
}

// IsAsset reports whether a URL points at an image or document
func IsAsset(link string) bool {
	if parsed, err := url.Parse(link); err == nil {
		return assetPattern.MatchString(parsed.Path)
	}
	return assetPattern.MatchString(link)
}

// IsNumericText reports whether anchor text is a plain integer or a year
func IsNumericText(text string) bool {
	return numericTextPattern.MatchString(strings.TrimSpace(text))
}

// IsReserved reports whether a URL contains a reserved namespace marker
func (f *Filter) IsReserved(link string) bool {
	decoded := link
	if unescaped, err := url.PathUnescape(link); err == nil {
		decoded = unescaped
	}

	for _, marker := range f.reserved {
		if strings.Contains(link, marker) || strings.Contains(decoded, marker) {
			return true
		}
	}
	return false
}

// Accept normalizes one anchor and applies every exclusion rule
func (f *Filter) Accept(base *url.URL, href, text string) (string, bool) {
	link, ok := Normalize(base, href)
	if !ok {
		return "", false
	}

	if IsAsset(link) {
		return "", false
	}

	if IsNumericText(text) {
		return "", false
	}

	if f.IsReserved(link) {
		return "", false
	}

	return link, true
}

// linkSet collects links once each, in first-seen order
type linkSet struct {
	seen  map[string]bool
	links []string
}

func newLinkSet() *linkSet {
	return &linkSet{seen: make(map[string]bool)}
}

func (s *linkSet) add(link string) {
	if s.seen[link] {
		return
	}
	s.seen[link] = true
	s.links = append(s.links, link)
}
