package gsmarena

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// deviceHref matches spec-sheet pages such as "samsung_galaxy_s24-12773.php".
var deviceHref = regexp.MustCompile(`-\d+\.php$`)

// ExtractDeviceLinks returns the absolute, de-duplicated device page URLs on
// a brand listing page, in page order.
func ExtractDeviceLinks(html []byte, pageURL string) ([]string, error) {
	origin, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	sel := doc.Find(".makers a[href]")
	if sel.Length() == 0 {
		sel = doc.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			return isDeviceHref(href)
		})
	}

	seen := make(map[string]struct{})
	links := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		link, err := normalizeURL(origin, href)
		if err != nil {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links, nil
}

// normalizeURL resolves u against the page it was found on.
func normalizeURL(origin *url.URL, u string) (string, error) {
	u = strings.TrimSpace(u)
	if u == "" || strings.HasPrefix(u, "#") {
		return "", fmt.Errorf("empty link")
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
		return "", fmt.Errorf("not URL link")
	}

	ref, err := url.Parse(u)
	if err != nil {
		return "", err
	}

	abs := origin.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", abs.Scheme)
	}
	abs.Fragment = ""

	return abs.String(), nil
}

// isDeviceHref excludes brand listings like "apple-phones-48.php", which share
// the numeric suffix.
func isDeviceHref(href string) bool {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return deviceHref.MatchString(href) && !strings.Contains(href, "-phones-")
}
