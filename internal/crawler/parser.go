package crawler

import (
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fashionetl/internal/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// Fallbacks used when a card lacks an element.
const (
	DefaultTitle  = "Unknown Product"
	DefaultPrice  = "Price Unavailable"
	DefaultRating = "Invalid Rating"
	DefaultColors = "3 Colors"
	DefaultSize   = "Size: M"
	DefaultGender = "Gender: Unisex"
)

// ParseCards extracts every div.collection-card of a listing page.
func ParseCards(r io.Reader, now time.Time) ([]model.RawProduct, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	stamp := now.Format(timestampLayout)
	var products []model.RawProduct
	doc.Find("div.collection-card").Each(func(_ int, card *goquery.Selection) {
		p := extractCard(card)
		p.Timestamp = stamp
		products = append(products, p)
	})
	return products, nil
}

func extractCard(card *goquery.Selection) model.RawProduct {
	return model.RawProduct{
		Title:  firstText(card.Find("h3.product-title"), DefaultTitle),
		Price:  firstText(card.Find("span.price"), DefaultPrice),
		Rating: labelledText(card, "Rating:", DefaultRating),
		Colors: labelledText(card, "Colors:", DefaultColors),
		Size:   labelledText(card, "Size:", DefaultSize),
		Gender: labelledText(card, "Gender:", DefaultGender),
	}
}

func firstText(s *goquery.Selection, fallback string) string {
	if s.Length() == 0 {
		return fallback
	}
	return strings.TrimSpace(s.First().Text())
}

// labelledText returns the first <p> whose text contains label.
func labelledText(card *goquery.Selection, label, fallback string) string {
	p := card.Find("p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), label)
	})
	return firstText(p, fallback)
}
