package models

// ConversationState represents the position of a user in the shop dialog
type ConversationState int

const (
	// Start is the initial state, entered on first contact and after checkout
	Start ConversationState = iota
	// BrowsingCatalog is the state when the user is paging through the product list
	BrowsingCatalog
	// ViewingProduct is the state when the user is looking at a product card
	ViewingProduct
	// ViewingCart is the state when the user is looking at the cart contents
	ViewingCart
	// AwaitingEmail is the state when the user was asked for a contact email
	AwaitingEmail
	// AwaitingLocation is the state when the user was asked for a delivery address
	AwaitingLocation
)

var stateNames = map[ConversationState]string{
	Start:            "start",
	BrowsingCatalog:  "browsing_catalog",
	ViewingProduct:   "viewing_product",
	ViewingCart:      "viewing_cart",
	AwaitingEmail:    "awaiting_email",
	AwaitingLocation: "awaiting_location",
}

// String returns the persisted token for the state.
func (s ConversationState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "start"
}

// ParseConversationState maps a persisted token back to a state.
// Unknown tokens fall back to Start so a user is never stuck.
func ParseConversationState(token string) ConversationState {
	for state, name := range stateNames {
		if name == token {
			return state
		}
	}
	return Start
}
