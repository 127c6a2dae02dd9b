package gsmarena

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoDevice is returned when a page carries no device name.
var ErrNoDevice = errors.New("no device found on page")

// Device is the payload the scraper service returns for one spec sheet.
type Device struct {
	Name      string        `json:"name"`
	Brand     string        `json:"brand"`
	SourceURL string        `json:"source_url"`
	ImageURL  string        `json:"image_url,omitempty"`
	Specs     []SpecSection `json:"specs"`
	ScrapedAt time.Time     `json:"scraped_at"`
}

type SpecSection struct {
	Name   string      `json:"name"`
	Fields []SpecField `json:"fields"`
}

type SpecField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ParseDevice extracts a Device from a spec-sheet page.
func ParseDevice(html []byte, pageURL string) (*Device, error) {
	origin, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	name := cleanText(doc.Find("h1.specs-phone-name-title").First().Text())
	if name == "" {
		name = titleName(doc.Find("title").First().Text())
	}
	if name == "" {
		return nil, ErrNoDevice
	}

	d := &Device{
		Name:      name,
		Brand:     BrandOf(name),
		SourceURL: pageURL,
		Specs:     []SpecSection{},
		ScrapedAt: time.Now().UTC(),
	}

	if src, ok := doc.Find(".specs-photo-main img").First().Attr("src"); ok {
		if img, err := normalizeURL(origin, src); err == nil {
			d.ImageURL = img
		}
	}

	doc.Find("#specs-list table").Each(func(_ int, table *goquery.Selection) {
		section := SpecSection{Name: cleanText(table.Find("th").First().Text())}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			value := cleanText(row.Find("td.nfo").Text())
			if value == "" {
				return
			}
			label := cleanText(row.Find("td.ttl").Text())

			// Unlabelled rows continue the field above them.
			if label == "" && len(section.Fields) > 0 {
				last := &section.Fields[len(section.Fields)-1]
				last.Value += "\n" + value
				return
			}
			section.Fields = append(section.Fields, SpecField{Label: label, Value: value})
		})

		if section.Name != "" && len(section.Fields) > 0 {
			d.Specs = append(d.Specs, section)
		}
	})

	return d, nil
}

// BrandOf returns the first word of a device name.
func BrandOf(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// titleName strips the site suffix from "Samsung Galaxy S24 - Full phone specifications".
func titleName(title string) string {
	title = cleanText(title)
	if i := strings.Index(title, " - "); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
