package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fashionetl/internal/logger"
	"fashionetl/internal/model"
	"fashionetl/internal/observability"
)

var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}

// Scraper walks the paginated catalog listing.
type Scraper struct {
	Client    *http.Client
	BaseURL   string
	MaxPages  int
	Delay     time.Duration
	UserAgent string
	Now       func() time.Time
	Log       logger.Logger
}

// PageURLs returns the listing URLs: the base page, then /page2 up to
// /page<MaxPages>.
func (s *Scraper) PageURLs() []string {
	base := strings.TrimRight(s.BaseURL, "/")
	urls := []string{base}
	for page := 2; page <= s.MaxPages; page++ {
		urls = append(urls, fmt.Sprintf("%s/page%d", base, page))
	}
	return urls
}

// Scrape fetches pages in order and collects their cards. A failed or empty
// first page is skipped; on any later page it marks the end of the catalog.
// The only error returned is ctx's.
func (s *Scraper) Scrape(ctx context.Context) ([]model.RawProduct, error) {
	log := s.log()
	urls := s.PageURLs()
	var products []model.RawProduct

	for i, url := range urls {
		page := i + 1
		log.Info("Scraping page", logger.Int("page", page), logger.String("url", url))

		cards, err := s.scrapePage(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return products, ctx.Err()
			}
			observability.PagesFetched.WithLabelValues("error").Inc()
			log.Warn("Failed to fetch page", logger.Int("page", page), logger.Err(err))
			if page > 1 {
				log.Info("Assuming last page reached")
				break
			}
			continue
		}
		if len(cards) == 0 {
			observability.PagesFetched.WithLabelValues("empty").Inc()
			log.Warn("No products on page", logger.Int("page", page))
			if page > 1 {
				log.Info("Assuming last page reached")
				break
			}
			continue
		}

		observability.PagesFetched.WithLabelValues("ok").Inc()
		observability.ProductsExtracted.Add(float64(len(cards)))
		log.Info("Products found", logger.Int("page", page), logger.Int("count", len(cards)))
		products = append(products, cards...)

		if page < len(urls) {
			if err := sleep(ctx, s.Delay); err != nil {
				return products, err
			}
		}
	}

	return products, nil
}

func (s *Scraper) scrapePage(ctx context.Context, url string) ([]model.RawProduct, error) {
	body, err := s.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseCards(body, s.now())
}

// Fetch GETs url and returns the body of a 2xx response.
func (s *Scraper) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

func (s *Scraper) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return defaultHTTPClient
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scraper) log() logger.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logger.NewNop()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
