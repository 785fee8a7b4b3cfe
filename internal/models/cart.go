package models

// Cart represents a user's cart. The reference is the chat ID, so exactly
// one cart exists per user and is created lazily by the backend.
type Cart struct {
	Reference      string
	ID             string
	FormattedPrice string
}

// CartLine represents one product-quantity entry within a cart
type CartLine struct {
	ID             string
	ProductID      string
	Name           string
	Description    string
	Quantity       int
	FormattedPrice string
}
