package engine

import (
	"context"

	"shop-tg-bot/internal/geo"
	"shop-tg-bot/internal/models"
)

// Catalog is the engine's view of the e-commerce backend.
// *elasticpath.Client satisfies it.
type Catalog interface {
	GetProduct(ctx context.Context, productID string) (models.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
	GetOrCreateCart(ctx context.Context, reference string) (models.Cart, error)
	AddToCart(ctx context.Context, cart models.Cart, productID string, quantity int) error
	ListCartLines(ctx context.Context, cart models.Cart) ([]models.CartLine, error)
	RemoveCartLine(ctx context.Context, cart models.Cart, lineID string) error
	CreateCustomer(ctx context.Context, email string) error
	GetFileLink(ctx context.Context, fileID string) (string, error)
	ListShopEntries(ctx context.Context, flowSlug string) ([]models.ShopEntry, error)
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	ResolveAddress(ctx context.Context, address string) (geo.Point, error)
}

// StateStore persists the conversation state per user and keeps the
// transient catalog page cursor.
type StateStore interface {
	GetState(ctx context.Context, userID int64) (models.ConversationState, error)
	SetState(ctx context.Context, userID int64, state models.ConversationState) error
	GetPage(userID int64) int
	SetPage(userID int64, page int)
}

// Renderer turns view descriptors into transport messages.
type Renderer interface {
	Render(ctx context.Context, userID int64, view View) error
}

// EventKind categorizes inbound events
type EventKind int

const (
	// EventStart is the /start command
	EventStart EventKind = iota
	// EventText is a plain text message
	EventText
	// EventCallback is an inline button press carrying a token
	EventCallback
	// EventLocation is a shared geographic location
	EventLocation
)

// Event is one inbound user interaction
type Event struct {
	Kind     EventKind
	Text     string
	Token    string
	Location geo.Point
}
