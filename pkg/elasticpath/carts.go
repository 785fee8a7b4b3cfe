package elasticpath

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"shop-tg-bot/internal/models"
)

type cartLineData struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Meta        struct {
		DisplayPrice struct {
			WithTax struct {
				Unit struct {
					Formatted string `json:"formatted"`
				} `json:"unit"`
			} `json:"with_tax"`
		} `json:"display_price"`
	} `json:"meta"`
}

// GetOrCreateCart gets a cart by reference. The backend creates the cart
// on first access, so the call never fails for a new user.
func (c *Client) GetOrCreateCart(ctx context.Context, reference string) (models.Cart, error) {
	resp, err := c.execute(ctx, "get cart", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("%s/carts/%s", c.apiURL, reference))
	})
	if err != nil {
		return models.Cart{}, err
	}

	var envelope struct {
		Data struct {
			ID   string `json:"id"`
			Meta struct {
				DisplayPrice struct {
					WithTax struct {
						Formatted string `json:"formatted"`
					} `json:"with_tax"`
				} `json:"display_price"`
			} `json:"meta"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.Cart{}, fmt.Errorf("failed to parse cart response: %w", err)
	}

	return models.Cart{
		Reference:      reference,
		ID:             envelope.Data.ID,
		FormattedPrice: envelope.Data.Meta.DisplayPrice.WithTax.Formatted,
	}, nil
}

// AddToCart adds one or more items of a product to a cart.
func (c *Client) AddToCart(ctx context.Context, cart models.Cart, productID string, quantity int) error {
	body := map[string]interface{}{
		"data": map[string]interface{}{
			"type":     "cart_item",
			"id":       productID,
			"quantity": quantity,
		},
	}

	_, err := c.execute(ctx, "add to cart", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(body).Post(fmt.Sprintf("%s/carts/%s/items", c.apiURL, cart.Reference))
	})
	return err
}

// ListCartLines gets the contents of a cart.
func (c *Client) ListCartLines(ctx context.Context, cart models.Cart) ([]models.CartLine, error) {
	resp, err := c.execute(ctx, "list cart items", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("%s/carts/%s/items", c.apiURL, cart.Reference))
	})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []cartLineData `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse cart items response: %w", err)
	}

	lines := make([]models.CartLine, 0, len(envelope.Data))
	for _, data := range envelope.Data {
		lines = append(lines, models.CartLine{
			ID:             data.ID,
			ProductID:      data.ProductID,
			Name:           data.Name,
			Description:    data.Description,
			Quantity:       data.Quantity,
			FormattedPrice: data.Meta.DisplayPrice.WithTax.Unit.Formatted,
		})
	}
	return lines, nil
}

// RemoveCartLine removes one line from a cart.
func (c *Client) RemoveCartLine(ctx context.Context, cart models.Cart, lineID string) error {
	_, err := c.execute(ctx, "remove cart item", func(r *resty.Request) (*resty.Response, error) {
		return r.Delete(fmt.Sprintf("%s/carts/%s/items/%s", c.apiURL, cart.Reference, lineID))
	})
	return err
}
