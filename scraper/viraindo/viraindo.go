package viraindo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"laptop-etl/config"
	"laptop-etl/models"
	"laptop-etl/utils"
)

// Scraper fetches the listing page with a headless browser and parses the
// product table.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use listing Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape fetches the configured listing URL and returns the raw product
// rows found in the main table.
func (s *Scraper) Scrape() ([]*models.RawProduct, error) {
	s.logger.Info("[viraindo] Starting scrape — source: %s", s.cfg.SourceURL)

	html, err := s.fetchPage()
	if err != nil {
		return nil, err
	}

	products, err := ParseListing(html, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info("[viraindo] Scrape complete — %d products parsed", len(products))
	return products, nil
}

// fetchPage renders the listing page in headless Chrome and returns the
// document HTML. The page is static but serves a bot check, so a plain
// HTTP client is not enough.
func (s *Scraper) fetchPage() (string, error) {
	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[viraindo] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	var html string
	err := s.retry.Do("fetch-listing", func() error {
		ctx, cancel := chromedp.NewContext(silentCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, time.Duration(s.cfg.FetchTimeoutSec)*time.Second)
		defer cancelTimeout()

		err := chromedp.Run(ctx,
			chromedp.Navigate(s.cfg.SourceURL),
			chromedp.Sleep(3*time.Second),
			chromedp.Evaluate(`document.documentElement.outerHTML`, &html),
		)
		if err != nil {
			return fmt.Errorf("chromedp fetch: %w", err)
		}
		if html == "" {
			return fmt.Errorf("empty document")
		}
		return nil
	})
	return html, err
}

var nonDigitRegexp = regexp.MustCompile(`[^\d]`)

// ParseListing extracts (name, price) rows from the first table in the
// document. Column 0 is the product name, column 1 the rupiah price.
// Header rows, blank names and non-positive prices are skipped.
func ParseListing(html string, scrapedAt time.Time) ([]*models.RawProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("viraindo: parse document: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("viraindo: no table in document")
	}

	var products []*models.RawProduct
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}

		name := collapseWhitespace(cols.Eq(0).Text())
		if name == "" {
			return
		}

		digits := nonDigitRegexp.ReplaceAllString(cols.Eq(1).Text(), "")
		price, err := strconv.ParseInt(digits, 10, 64)
		if err != nil || price <= 0 {
			return
		}

		products = append(products, &models.RawProduct{
			ProductName: name,
			PriceRaw:    price,
			ScrapedAt:   scrapedAt,
		})
	})
	return products, nil
}

var whitespaceRunRegexp = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRunRegexp.ReplaceAllString(s, " "))
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
