package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"shop-tg-bot/internal/callbacks"
	"shop-tg-bot/internal/constants"
	"shop-tg-bot/internal/delivery"
	"shop-tg-bot/internal/geo"
	"shop-tg-bot/internal/models"
	"shop-tg-bot/internal/validation"
	"shop-tg-bot/pkg/elasticpath"
)

// handlerFunc processes one event for one state. A nil view means the
// event was unrecognized in this state: nothing is rendered and the
// persisted state is left untouched.
type handlerFunc func(ctx context.Context, userID int64, ev Event) (models.ConversationState, View, error)

// Engine is the per-user conversation state machine. Each inbound event
// is dispatched to the handler for the user's persisted state; the
// handler performs backend calls and returns the next state plus a view.
// The next state is persisted only when the handler succeeds, so a
// backend failure leaves the conversation where it was.
type Engine struct {
	catalog   Catalog
	geocoder  Geocoder
	states    StateStore
	renderer  Renderer
	shopsFlow string
	logger    *logrus.Logger

	handlers map[models.ConversationState]handlerFunc
}

// New creates a conversation engine
func New(
	catalog Catalog,
	geocoder Geocoder,
	states StateStore,
	renderer Renderer,
	shopsFlow string,
	logger *logrus.Logger,
) *Engine {
	e := &Engine{
		catalog:   catalog,
		geocoder:  geocoder,
		states:    states,
		renderer:  renderer,
		shopsFlow: shopsFlow,
		logger:    logger,
	}

	e.handlers = map[models.ConversationState]handlerFunc{
		models.Start:            e.handleStart,
		models.BrowsingCatalog:  e.handleBrowsingCatalog,
		models.ViewingProduct:   e.handleViewingProduct,
		models.ViewingCart:      e.handleViewingCart,
		models.AwaitingEmail:    e.handleAwaitingEmail,
		models.AwaitingLocation: e.handleAwaitingLocation,
	}

	return e
}

// Handle processes one inbound event for a user. /start always restarts
// the dialog; any other event is dispatched by the persisted state.
func (e *Engine) Handle(ctx context.Context, userID int64, ev Event) error {
	state := models.Start
	if ev.Kind != EventStart {
		var err error
		state, err = e.states.GetState(ctx, userID)
		if err != nil {
			return err
		}
	}

	next, view, err := e.handlers[state](ctx, userID, ev)
	if err != nil {
		return err
	}
	if view == nil {
		e.logger.Debugf("Ignored event in state %s for user %d", state, userID)
		return nil
	}

	if err := e.states.SetState(ctx, userID, next); err != nil {
		return err
	}
	return e.renderer.Render(ctx, userID, view)
}

func (e *Engine) handleStart(ctx context.Context, userID int64, _ Event) (models.ConversationState, View, error) {
	e.states.SetPage(userID, 0)

	view, err := e.buildCatalogView(ctx, 0)
	if err != nil {
		return 0, nil, err
	}
	return models.BrowsingCatalog, view, nil
}

func (e *Engine) handleBrowsingCatalog(ctx context.Context, userID int64, ev Event) (models.ConversationState, View, error) {
	if ev.Kind != EventCallback {
		return models.BrowsingCatalog, nil, nil
	}

	page := e.states.GetPage(userID)

	switch ev.Token {
	case callbacks.NextPage:
		// Advance only onto a page known to contain products.
		probe, err := e.catalog.ListProducts(ctx, constants.ProductPageSize, constants.ProductPageSize*(page+1))
		if err != nil {
			return 0, nil, err
		}
		if len(probe) > 0 {
			page++
			e.states.SetPage(userID, page)
		}

	case callbacks.PreviousPage:
		if page > 0 {
			page--
			e.states.SetPage(userID, page)
		}

	default:
		if callbacks.IsSentinel(ev.Token) {
			return models.BrowsingCatalog, nil, nil
		}
		return e.showProduct(ctx, userID, ev.Token)
	}

	view, err := e.buildCatalogView(ctx, page)
	if err != nil {
		return 0, nil, err
	}
	return models.BrowsingCatalog, view, nil
}

func (e *Engine) handleViewingProduct(ctx context.Context, userID int64, ev Event) (models.ConversationState, View, error) {
	if ev.Kind != EventCallback {
		return models.ViewingProduct, nil, nil
	}

	switch ev.Token {
	case callbacks.BackToMenu:
		view, err := e.buildCatalogView(ctx, e.states.GetPage(userID))
		if err != nil {
			return 0, nil, err
		}
		return models.BrowsingCatalog, view, nil

	case callbacks.ShowCart:
		view, err := e.buildCartView(ctx, userID)
		if err != nil {
			return 0, nil, err
		}
		return models.ViewingCart, view, nil
	}

	payload, err := callbacks.DecodeAddToCart(ev.Token)
	if err != nil {
		return models.ViewingProduct, nil, nil
	}

	cart, err := e.catalog.GetOrCreateCart(ctx, cartReference(userID))
	if err != nil {
		return 0, nil, err
	}
	if err := e.catalog.AddToCart(ctx, cart, payload.ProductID, payload.Quantity); err != nil {
		return 0, nil, err
	}

	return e.showProduct(ctx, userID, payload.ProductID)
}

func (e *Engine) handleViewingCart(ctx context.Context, userID int64, ev Event) (models.ConversationState, View, error) {
	if ev.Kind != EventCallback {
		return models.ViewingCart, nil, nil
	}

	switch ev.Token {
	case callbacks.BackToMenu:
		view, err := e.buildCatalogView(ctx, e.states.GetPage(userID))
		if err != nil {
			return 0, nil, err
		}
		return models.BrowsingCatalog, view, nil

	case callbacks.Checkout:
		return models.AwaitingLocation, LocationPromptView{}, nil
	}

	if callbacks.IsSentinel(ev.Token) {
		return models.ViewingCart, nil, nil
	}

	// Any other token is a cart line id to remove.
	cart, err := e.catalog.GetOrCreateCart(ctx, cartReference(userID))
	if err != nil {
		return 0, nil, err
	}
	if err := e.catalog.RemoveCartLine(ctx, cart, ev.Token); err != nil {
		if errors.Is(err, elasticpath.ErrNotFound) {
			return models.ViewingCart, nil, nil
		}
		return 0, nil, err
	}

	view, err := e.buildCartView(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	return models.ViewingCart, view, nil
}

func (e *Engine) handleAwaitingEmail(ctx context.Context, userID int64, ev Event) (models.ConversationState, View, error) {
	if ev.Kind != EventText {
		return models.AwaitingEmail, nil, nil
	}

	if !validation.IsEmail(ev.Text) {
		return models.AwaitingEmail, EmailPromptView{Retry: true}, nil
	}

	if err := e.catalog.CreateCustomer(ctx, ev.Text); err != nil {
		return 0, nil, err
	}
	return models.Start, ThanksView{}, nil
}

func (e *Engine) handleAwaitingLocation(ctx context.Context, userID int64, ev Event) (models.ConversationState, View, error) {
	var point geo.Point

	switch ev.Kind {
	case EventLocation:
		point = ev.Location
	case EventText:
		var err error
		point, err = e.geocoder.ResolveAddress(ctx, ev.Text)
		if errors.Is(err, geo.ErrUnknownAddress) {
			return models.AwaitingLocation, LocationPromptView{Retry: true}, nil
		}
		if err != nil {
			return 0, nil, err
		}
	default:
		return models.AwaitingLocation, nil, nil
	}

	shops, err := e.catalog.ListShopEntries(ctx, e.shopsFlow)
	if err != nil {
		return 0, nil, err
	}

	nearest, distance, found := geo.NearestShop(point, shops)
	if !found {
		return 0, nil, fmt.Errorf("no shop entries in flow %q", e.shopsFlow)
	}

	view := DeliveryView{
		Shop:           nearest,
		DistanceMeters: distance,
		Tier:           delivery.ForDistance(distance),
	}
	return models.Start, view, nil
}

// showProduct fetches a product and the user's cart and builds the
// product card. An unknown product id is treated like a malformed token.
func (e *Engine) showProduct(ctx context.Context, userID int64, productID string) (models.ConversationState, View, error) {
	product, err := e.catalog.GetProduct(ctx, productID)
	if errors.Is(err, elasticpath.ErrNotFound) {
		return models.ViewingProduct, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}

	var imageURL string
	if product.MainImageID != "" {
		imageURL, err = e.catalog.GetFileLink(ctx, product.MainImageID)
		if err != nil {
			return 0, nil, err
		}
	}

	cart, err := e.catalog.GetOrCreateCart(ctx, cartReference(userID))
	if err != nil {
		return 0, nil, err
	}
	lines, err := e.catalog.ListCartLines(ctx, cart)
	if err != nil {
		return 0, nil, err
	}

	inCart := 0
	for _, line := range lines {
		if line.ProductID == product.ID {
			inCart += line.Quantity
		}
	}

	view := ProductView{
		Product:        product,
		ImageURL:       imageURL,
		InCartQuantity: inCart,
	}
	return models.ViewingProduct, view, nil
}

// buildCatalogView fetches one catalog page plus a lookahead probe of the
// following page, which decides whether the next button is shown.
func (e *Engine) buildCatalogView(ctx context.Context, page int) (View, error) {
	products, err := e.catalog.ListProducts(ctx, constants.ProductPageSize, constants.ProductPageSize*page)
	if err != nil {
		return nil, err
	}

	lookahead, err := e.catalog.ListProducts(ctx, constants.ProductPageSize, constants.ProductPageSize*(page+1))
	if err != nil {
		return nil, err
	}

	return CatalogView{
		Products: products,
		Page:     page,
		HasPrev:  page > 0,
		HasNext:  len(lookahead) > 0,
	}, nil
}

func (e *Engine) buildCartView(ctx context.Context, userID int64) (View, error) {
	cart, err := e.catalog.GetOrCreateCart(ctx, cartReference(userID))
	if err != nil {
		return nil, err
	}
	lines, err := e.catalog.ListCartLines(ctx, cart)
	if err != nil {
		return nil, err
	}

	return CartView{Cart: cart, Lines: lines}, nil
}

// cartReference derives the backend cart reference from the chat ID.
// The cart is the user: one cart per chat, created lazily.
func cartReference(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
