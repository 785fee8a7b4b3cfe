package elasticpath

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"shop-tg-bot/internal/models"
)

type productData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Meta        struct {
		DisplayPrice struct {
			WithTax struct {
				Formatted string `json:"formatted"`
			} `json:"with_tax"`
		} `json:"display_price"`
		Stock struct {
			Level        int    `json:"level"`
			Availability string `json:"availability"`
		} `json:"stock"`
	} `json:"meta"`
	Relationships struct {
		MainImage *struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		} `json:"main_image"`
	} `json:"relationships"`
}

func (p productData) toModel() models.Product {
	product := models.Product{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		FormattedPrice:    p.Meta.DisplayPrice.WithTax.Formatted,
		StockLevel:        p.Meta.Stock.Level,
		StockAvailability: p.Meta.Stock.Availability,
	}
	if p.Relationships.MainImage != nil {
		product.MainImageID = p.Relationships.MainImage.Data.ID
	}
	return product
}

// GetProduct gets a product by id. Returns ErrNotFound for unknown ids.
func (c *Client) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	resp, err := c.execute(ctx, "get product", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("%s/products/%s", c.apiURL, productID))
	})
	if err != nil {
		return models.Product{}, err
	}

	var envelope struct {
		Data productData `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.Product{}, fmt.Errorf("failed to parse product response: %w", err)
	}

	return envelope.Data.toModel(), nil
}

// ListProducts gets a page of the catalog using limit/offset pagination.
// An offset beyond the end yields an empty slice, not an error.
func (c *Client) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	resp, err := c.execute(ctx, "list products", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetQueryParam("page[limit]", strconv.Itoa(limit)).
			SetQueryParam("page[offset]", strconv.Itoa(offset)).
			Get(fmt.Sprintf("%s/products", c.apiURL))
	})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []productData `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}

	products := make([]models.Product, 0, len(envelope.Data))
	for _, data := range envelope.Data {
		products = append(products, data.toModel())
	}
	return products, nil
}

// NewProduct describes a product to create in the catalog. Used by the
// seeding tool.
type NewProduct struct {
	Name          string
	Slug          string
	SKU           string
	Description   string
	PriceAmount   int
	PriceCurrency string
}

// CreateProduct creates a live physical product in the catalog.
func (c *Client) CreateProduct(ctx context.Context, product NewProduct) (models.Product, error) {
	body := map[string]interface{}{
		"data": map[string]interface{}{
			"type":         "product",
			"name":         product.Name,
			"slug":         product.Slug,
			"sku":          product.SKU,
			"description":  product.Description,
			"manage_stock": false,
			"price": []map[string]interface{}{
				{
					"amount":       product.PriceAmount,
					"currency":     product.PriceCurrency,
					"includes_tax": true,
				},
			},
			"status":         "live",
			"commodity_type": "physical",
		},
	}

	resp, err := c.execute(ctx, "create product", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(body).Post(fmt.Sprintf("%s/products", c.apiURL))
	})
	if err != nil {
		return models.Product{}, err
	}

	var envelope struct {
		Data productData `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.Product{}, fmt.Errorf("failed to parse create product response: %w", err)
	}

	return envelope.Data.toModel(), nil
}

// AddMainImage assigns an uploaded file as a product's main image.
func (c *Client) AddMainImage(ctx context.Context, productID, fileID string) error {
	body := map[string]interface{}{
		"data": map[string]string{
			"type": "main_image",
			"id":   fileID,
		},
	}

	_, err := c.execute(ctx, "add main image", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(body).Post(fmt.Sprintf("%s/products/%s/relationships/main-image", c.apiURL, productID))
	})
	return err
}
