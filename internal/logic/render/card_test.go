package render

import (
	"strings"
	"testing"

	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComposeCardHTMLRemoteImage(t *testing.T) {
	ad := models.Ad{
		Title:       `Save <50%> "today"`,
		Description: "Fresh & fast",
		ImageURL:    "https://cdn.example.com/a.jpg",
		Platform:    models.PlatformMeta,
		BrandName:   "Bloom",
		CTAText:     "Shop Now",
		Tags:        []string{"sale", "<b>"},
	}
	out := ComposeCardHTML(Card{Ad: ad, URL: "https://ads.test/share/abc", ImagePath: "/api/ads/1/image"})

	assert.Contains(t, out, `<meta property="og:title" content="Save &lt;50%&gt; &#34;today&#34;">`)
	assert.Contains(t, out, `<meta property="og:image" content="https://cdn.example.com/a.jpg">`)
	assert.Contains(t, out, `<meta property="og:url" content="https://ads.test/share/abc">`)
	assert.Contains(t, out, `<img src="https://cdn.example.com/a.jpg"`)
	assert.Contains(t, out, "<p>Fresh &amp; fast</p>")
	assert.Contains(t, out, "Meta Ads")
	assert.Contains(t, out, "<li>&lt;b&gt;</li>")
	assert.NotContains(t, out, "<b>")
}

func TestComposeCardHTMLEmbeddedImage(t *testing.T) {
	ad := models.Ad{Title: "Pixel", ImageURL: "data:image/png;base64,AAAA", Platform: models.PlatformBing}
	out := ComposeCardHTML(Card{Ad: ad, ImagePath: "/api/ads/9/image"})

	assert.NotContains(t, out, "og:image")
	assert.NotContains(t, out, "og:url")
	assert.NotContains(t, out, "base64")
	assert.Contains(t, out, `<img src="/api/ads/9/image" alt="Pixel"`)
}

func TestComposeCardHTMLWithoutImage(t *testing.T) {
	out := ComposeCardHTML(Card{Ad: models.Ad{Title: "Plain", Platform: models.PlatformGoogle}})

	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, `class="tags"`)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}
