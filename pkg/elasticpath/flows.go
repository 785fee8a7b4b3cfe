package elasticpath

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"shop-tg-bot/internal/models"
)

// ListShopEntries gets all shop locations stored as entries of the named
// flow. The flow schema must carry Address, Alias, Longitude and Latitude
// fields under exactly those slugs.
func (c *Client) ListShopEntries(ctx context.Context, flowSlug string) ([]models.ShopEntry, error) {
	resp, err := c.execute(ctx, "list flow entries", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("%s/flows/%s/entries", c.apiURL, flowSlug))
	})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []models.ShopEntry `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse flow entries response: %w", err)
	}

	return envelope.Data, nil
}

// CreateFlowEntry creates an entry with the given field values on a flow.
// Used by the seeding tool.
func (c *Client) CreateFlowEntry(ctx context.Context, flowSlug string, fields map[string]interface{}) error {
	data := map[string]interface{}{
		"type": "entry",
	}
	for slug, value := range fields {
		data[slug] = value
	}

	_, err := c.execute(ctx, "create flow entry", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(map[string]interface{}{"data": data}).
			Post(fmt.Sprintf("%s/flows/%s/entries", c.apiURL, flowSlug))
	})
	return err
}
