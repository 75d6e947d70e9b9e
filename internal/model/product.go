package model

// Column names shared by the transform table and every sink.
const (
	ColTitle         = "Title"
	ColPrice         = "Price"
	ColPriceInRupiah = "Price_in_rupiah"
	ColRating        = "Rating"
	ColColors        = "Colors"
	ColSize          = "Size"
	ColGender        = "Gender"
	ColTimestamp     = "timestamp"
)

// RawProduct is one scraped card, every field still a display string.
type RawProduct struct {
	Title     string
	Price     string
	Rating    string
	Colors    string
	Size      string
	Gender    string
	Timestamp string
}

// Product is the final, typed record handed to sinks.
type Product struct {
	Title         string  `csv:"Title"`
	PriceInRupiah float64 `csv:"Price_in_rupiah"`
	Rating        float64 `csv:"Rating"`
	Colors        int     `csv:"Colors"`
	Size          string  `csv:"Size"`
	Gender        string  `csv:"Gender"`
	Timestamp     string  `csv:"timestamp"`
}

// ProductColumns is the column order of a Product row.
var ProductColumns = []string{
	ColTitle, ColPriceInRupiah, ColRating, ColColors, ColSize, ColGender, ColTimestamp,
}

// Values returns the row in ProductColumns order.
func (p Product) Values() []any {
	return []any{p.Title, p.PriceInRupiah, p.Rating, p.Colors, p.Size, p.Gender, p.Timestamp}
}
