package crawler

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionetl/internal/model"
)

const cardHTML = `
<div class="collection-card">
  <div class="product-details">
    <h3 class="product-title">T-shirt 2</h3>
    <div class="price-container"><span class="price">$102.15</span></div>
    <p style="font-size: 14px;">Rating: ⭐ 3.9 / 5</p>
    <p style="font-size: 14px;">3 Colors</p>
    <p style="font-size: 14px;">Size: M</p>
    <p style="font-size: 14px;">Gender: Women</p>
  </div>
</div>`

const bareCardHTML = `<div class="collection-card"><div class="product-details"></div></div>`

var fixedNow = time.Date(2025, 5, 10, 8, 30, 0, 0, time.UTC)

func TestParseCards(t *testing.T) {
	products, err := ParseCards(strings.NewReader("<html><body>"+cardHTML+bareCardHTML+"</body></html>"), fixedNow)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, model.RawProduct{
		Title:     "T-shirt 2",
		Price:     "$102.15",
		Rating:    "Rating: ⭐ 3.9 / 5",
		Colors:    DefaultColors,
		Size:      "Size: M",
		Gender:    "Gender: Women",
		Timestamp: "2025-05-10 08:30:00",
	}, products[0])

	assert.Equal(t, model.RawProduct{
		Title:     DefaultTitle,
		Price:     DefaultPrice,
		Rating:    DefaultRating,
		Colors:    DefaultColors,
		Size:      DefaultSize,
		Gender:    DefaultGender,
		Timestamp: "2025-05-10 08:30:00",
	}, products[1])
}

func TestParseCards_LabelledColors(t *testing.T) {
	html := `<div class="collection-card"><p>Colors: 5 Colors</p></div>`
	products, err := ParseCards(strings.NewReader(html), fixedNow)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Colors: 5 Colors", products[0].Colors)
}

func TestParseCards_NoCards(t *testing.T) {
	products, err := ParseCards(strings.NewReader("<html><body><p>nothing</p></body></html>"), fixedNow)
	require.NoError(t, err)
	assert.Empty(t, products)
}
