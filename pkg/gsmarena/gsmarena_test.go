package gsmarena

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<div class="makers"><ul>
  <li><a href="samsung_galaxy_s24_ultra-12771.php"><img src="a.jpg"><strong>Galaxy S24 Ultra</strong></a></li>
  <li><a href="/samsung_galaxy_s24-12773.php"><strong>Galaxy S24</strong></a></li>
  <li><a href="samsung_galaxy_s24_ultra-12771.php#top">dup</a></li>
  <li><a href="javascript:void(0)">bad</a></li>
  <li><a href="data:text/html,hi">bad</a></li>
</ul></div>
<div class="nav-pages"><a href="samsung-phones-f-9-0-p2.php">2</a></div>
</body></html>`

func TestExtractDeviceLinksFromMakers(t *testing.T) {
	links, err := ExtractDeviceLinks([]byte(listingPage), "https://www.gsmarena.com/samsung-phones-9.php")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://www.gsmarena.com/samsung_galaxy_s24_ultra-12771.php",
		"https://www.gsmarena.com/samsung_galaxy_s24-12773.php",
	}, links, "Expect absolute, de-duplicated links in page order")
}

func TestExtractDeviceLinksFallback(t *testing.T) {
	page := `<html><body>
<a href="/news.php3">news</a>
<a href="https://www.gsmarena.com/apple_iphone_15-12559.php">iPhone 15</a>
<a href="apple_iphone_15_pro-12557.php?ref=x">iPhone 15 Pro</a>
<a href="apple-phones-48.php">Apple</a>
</body></html>`

	links, err := ExtractDeviceLinks([]byte(page), "https://www.gsmarena.com/results.php3")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://www.gsmarena.com/apple_iphone_15-12559.php",
		"https://www.gsmarena.com/apple_iphone_15_pro-12557.php?ref=x",
	}, links)
}

func TestExtractDeviceLinksEmptyPage(t *testing.T) {
	links, err := ExtractDeviceLinks([]byte(`<html><body><p>nothing here</p></body></html>`), "https://www.gsmarena.com/x.php")
	require.NoError(t, err)
	assert.NotNil(t, links)
	assert.Empty(t, links)
}

const specPage = `<html><head><title>Samsung Galaxy S24 - Full phone specifications</title></head><body>
<h1 class="specs-phone-name-title" data-spec="modelname">Samsung  Galaxy S24</h1>
<div class="specs-photo-main"><a href="#"><img src="https://fdn2.gsmarena.com/vv/bigpic/samsung-galaxy-s24.jpg"></a></div>
<div id="specs-list">
<table cellspacing="0">
<tr><th rowspan="3" scope="row">Network</th><td class="ttl"><a href="network-bands.php3">Technology</a></td><td class="nfo">GSM / CDMA / HSPA / LTE / 5G</td></tr>
<tr><td class="ttl">2G bands</td><td class="nfo">GSM 850 / 900 / 1800 / 1900</td></tr>
<tr><td class="ttl">&nbsp;</td><td class="nfo">CDMA 800 / 1900</td></tr>
</table>
<table cellspacing="0">
<tr><th rowspan="2" scope="row">Body</th><td class="ttl">Dimensions</td><td class="nfo">147 x 70.6 x 7.6 mm</td></tr>
<tr><td class="ttl">Weight</td><td class="nfo">167 g</td></tr>
</table>
<table cellspacing="0"><tr><th>Empty</th><td class="ttl">x</td><td class="nfo"></td></tr></table>
</div>
</body></html>`

func specValue(d *Device, section, label string) (string, bool) {
	for _, s := range d.Specs {
		if !strings.EqualFold(s.Name, section) {
			continue
		}
		for _, f := range s.Fields {
			if strings.EqualFold(f.Label, label) {
				return f.Value, true
			}
		}
	}
	return "", false
}

func TestParseDevice(t *testing.T) {
	d, err := ParseDevice([]byte(specPage), "https://www.gsmarena.com/samsung_galaxy_s24-12773.php")
	require.NoError(t, err)

	assert.Equal(t, "Samsung Galaxy S24", d.Name)
	assert.Equal(t, "Samsung", d.Brand)
	assert.Equal(t, "https://www.gsmarena.com/samsung_galaxy_s24-12773.php", d.SourceURL)
	assert.Equal(t, "https://fdn2.gsmarena.com/vv/bigpic/samsung-galaxy-s24.jpg", d.ImageURL)
	require.Len(t, d.Specs, 2, "Expect sections without values to be dropped")
	assert.Equal(t, "Network", d.Specs[0].Name)
	assert.Equal(t, "Body", d.Specs[1].Name)

	bands, ok := specValue(d, "network", "2G bands")
	require.True(t, ok)
	assert.Equal(t, "GSM 850 / 900 / 1800 / 1900\nCDMA 800 / 1900", bands, "Expect unlabelled row to continue the previous field")

	weight, ok := specValue(d, "Body", "Weight")
	require.True(t, ok)
	assert.Equal(t, "167 g", weight)

	_, ok = specValue(d, "Body", "Colors")
	assert.False(t, ok)
}

func TestParseDeviceFallsBackToTitle(t *testing.T) {
	page := `<html><head><title>Nokia 3310 - Full phone specifications</title></head><body></body></html>`
	d, err := ParseDevice([]byte(page), "https://www.gsmarena.com/nokia_3310-192.php")
	require.NoError(t, err)
	assert.Equal(t, "Nokia 3310", d.Name)
	assert.Equal(t, "Nokia", d.Brand)
	assert.Empty(t, d.Specs)
}

func TestParseDeviceWithoutName(t *testing.T) {
	_, err := ParseDevice([]byte(`<html><body><p>404</p></body></html>`), "https://www.gsmarena.com/x-1.php")
	assert.ErrorIs(t, err, ErrNoDevice)
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		if r.URL.Path == "/missing.php" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(specPage))
	}))
	defer srv.Close()

	f := NewFetcher(100, "test-agent", time.Second)

	body, err := f.Fetch(context.Background(), srv.URL+"/device-1.php")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "specs-phone-name-title"))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.php")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetcherHonoursCancelledContext(t *testing.T) {
	f := NewFetcher(0.001, "", time.Second)

	// The first call consumes the only token.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
