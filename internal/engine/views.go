package engine

import (
	"shop-tg-bot/internal/delivery"
	"shop-tg-bot/internal/models"
)

// View is a transport-agnostic description of what to show the user.
// The render adapter owns the wording and keyboard layout.
type View interface {
	view()
}

// CatalogView shows one page of the product list
type CatalogView struct {
	Products []models.Product
	Page     int
	HasPrev  bool
	HasNext  bool
}

// ProductView shows a product card with its image and the quantity of
// this product already in the user's cart
type ProductView struct {
	Product        models.Product
	ImageURL       string
	InCartQuantity int
}

// CartView shows the cart contents with per-line remove controls
type CartView struct {
	Cart  models.Cart
	Lines []models.CartLine
}

// LocationPromptView asks the user for a delivery address or location.
// Retry marks a re-prompt after an unrecognized address.
type LocationPromptView struct {
	Retry bool
}

// EmailPromptView asks the user for a contact email.
// Retry marks a re-prompt after a malformed one.
type EmailPromptView struct {
	Retry bool
}

// ThanksView confirms that the customer record was created
type ThanksView struct{}

// DeliveryView announces the delivery outcome for the nearest shop
type DeliveryView struct {
	Shop           models.ShopEntry
	DistanceMeters float64
	Tier           delivery.Tier
}

func (CatalogView) view()        {}
func (ProductView) view()        {}
func (CartView) view()           {}
func (LocationPromptView) view() {}
func (EmailPromptView) view()    {}
func (ThanksView) view()         {}
func (DeliveryView) view()       {}
