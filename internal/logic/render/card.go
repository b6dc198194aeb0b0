// Package render composes server-side HTML for shared ads.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/patrickwarner/adlibrary/internal/media"
	"github.com/patrickwarner/adlibrary/internal/models"
)

// Card is what a shared ad page shows.
type Card struct {
	Ad models.Ad
	// URL is the canonical share link, used for og:url.
	URL string
	// ImagePath serves embedded images, which cannot be used as og:image.
	ImagePath string
}

func (c Card) imageSrc() string {
	switch {
	case c.Ad.ImageURL == "":
		return ""
	case media.IsDataURI(c.Ad.ImageURL):
		return c.ImagePath
	default:
		return c.Ad.ImageURL
	}
}

// metaTags returns the Open Graph tags link unfurlers read.
func (c Card) metaTags() []string {
	tags := []string{
		metaProperty("og:type", "article"),
		metaProperty("og:title", c.Ad.Title),
		metaProperty("og:description", c.Ad.Description),
	}
	if c.URL != "" {
		tags = append(tags, metaProperty("og:url", c.URL))
	}
	if c.Ad.ImageURL != "" && !media.IsDataURI(c.Ad.ImageURL) {
		tags = append(tags, metaProperty("og:image", c.Ad.ImageURL))
	}
	return tags
}

func metaProperty(property, content string) string {
	return fmt.Sprintf(`<meta property="%s" content="%s">`, property, html.EscapeString(content))
}

// ComposeCardHTML renders c as a standalone HTML page.
func ComposeCardHTML(c Card) string {
	var b strings.Builder
	esc := html.EscapeString

	b.WriteString("<!DOCTYPE html>\n<html lang=\"de\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(c.Ad.Title))
	for _, tag := range c.metaTags() {
		b.WriteString(tag)
		b.WriteByte('\n')
	}
	b.WriteString("</head>\n<body>\n<article class=\"ad-card\">\n")

	if src := c.imageSrc(); src != "" {
		alt := c.Ad.Title
		if alt == "" {
			alt = "Advertisement"
		}
		fmt.Fprintf(&b, `<img src="%s" alt="%s" style="max-width:100%%;height:auto;display:block;">`+"\n", esc(src), esc(alt))
	}

	fmt.Fprintf(&b, "<span class=\"platform\">%s</span>\n", esc(c.Ad.Platform.Label()))
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(c.Ad.Title))
	if c.Ad.BrandName != "" {
		fmt.Fprintf(&b, "<p class=\"brand\">%s</p>\n", esc(c.Ad.BrandName))
	}
	fmt.Fprintf(&b, "<p>%s</p>\n", esc(c.Ad.Description))
	if c.Ad.CTAText != "" {
		fmt.Fprintf(&b, "<span class=\"cta\">%s</span>\n", esc(c.Ad.CTAText))
	}
	if len(c.Ad.Tags) > 0 {
		b.WriteString("<ul class=\"tags\">")
		for _, t := range c.Ad.Tags {
			fmt.Fprintf(&b, "<li>%s</li>", esc(t))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("</article>\n</body>\n</html>\n")
	return b.String()
}
