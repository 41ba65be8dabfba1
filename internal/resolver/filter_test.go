package resolver

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNormalize(t *testing.T) {
	base := mustParse(t, "https://id.wikipedia.org/wiki/Jakarta")

	tests := []struct {
		href string
		want string
		ok   bool
	}{
		{"/wiki/Bandung", "https://id.wikipedia.org/wiki/Bandung", true},
		{"Surabaya", "https://id.wikipedia.org/wiki/Surabaya", true},
		{"/wiki/Bali#Sejarah", "https://id.wikipedia.org/wiki/Bali", true},
		{"https://ID.wikipedia.org/wiki/Medan", "https://ID.wikipedia.org/wiki/Medan", true},
		{"https://en.wikipedia.org/wiki/Jakarta", "", false},
		{"http://id.wikipedia.org:8080/wiki/Bali", "", false},
		{"mailto:someone@example.com", "", false},
		{"javascript:void(0)", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, ok := Normalize(base, tt.href)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAsset(t *testing.T) {
	assert.True(t, IsAsset("https://example.com/logo.PNG"))
	assert.True(t, IsAsset("https://example.com/photo.jpg"))
	assert.True(t, IsAsset("https://example.com/paper.pdf?download=1"))
	assert.True(t, IsAsset("https://example.com/icon.svg"))
	assert.False(t, IsAsset("https://example.com/wiki/PNG"))
	assert.False(t, IsAsset("https://example.com/wiki/Page"))
}

func TestIsNumericText(t *testing.T) {
	assert.True(t, IsNumericText("1998"))
	assert.True(t, IsNumericText(" 42 "))
	assert.False(t, IsNumericText("1998 in music"))
	assert.False(t, IsNumericText(""))
	assert.False(t, IsNumericText("Jakarta"))
}

func TestFilterIsReserved(t *testing.T) {
	f := NewFilter(DefaultReservedMarkers)

	assert.True(t, f.IsReserved("https://id.wikipedia.org/wiki/Istimewa:Pencarian"))
	assert.True(t, f.IsReserved("https://id.wikipedia.org/wiki/Kategori:Kota"))
	assert.True(t, f.IsReserved("https://en.wikipedia.org/wiki/Help%3AContents"))
	assert.False(t, f.IsReserved("https://id.wikipedia.org/wiki/Jakarta"))

	custom := NewFilter([]string{"Portal:"})
	assert.True(t, custom.IsReserved("https://en.wikipedia.org/wiki/Portal:Asia"))
	assert.False(t, custom.IsReserved("https://en.wikipedia.org/wiki/Special:Random"))
}

func TestFilterAccept(t *testing.T) {
	base := mustParse(t, "https://id.wikipedia.org/wiki/Jakarta")
	f := NewFilter(DefaultReservedMarkers)

	link, ok := f.Accept(base, "/wiki/Bandung#Geografi", "Bandung")
	assert.True(t, ok)
	assert.Equal(t, "https://id.wikipedia.org/wiki/Bandung", link)

	_, ok = f.Accept(base, "/wiki/2024", "2024")
	assert.False(t, ok, "year link text")

	_, ok = f.Accept(base, "/wiki/Berkas:Monas.jpg", "Monas")
	assert.False(t, ok, "image asset")

	_, ok = f.Accept(base, "/wiki/Bantuan:Isi", "Bantuan")
	assert.False(t, ok, "reserved namespace")

	_, ok = f.Accept(base, "https://www.example.com/", "external")
	assert.False(t, ok, "other origin")
}

func TestLinkSetKeepsFirstSeenOrder(t *testing.T) {
	s := newLinkSet()
	for _, l := range []string{"b", "a", "b", "c", "a"} {
		s.add(l)
	}
	assert.Equal(t, []string{"b", "a", "c"}, s.links)
}
