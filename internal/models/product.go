package models

// Product represents a product snapshot from the shop catalog
type Product struct {
	ID                string
	Name              string
	Description       string
	FormattedPrice    string
	StockLevel        int
	StockAvailability string
	MainImageID       string
}
