package elasticpath

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// CreateCustomer creates a customer record from a contact email.
func (c *Client) CreateCustomer(ctx context.Context, email string) error {
	body := map[string]interface{}{
		"data": map[string]string{
			"type":  "customer",
			"name":  "Anonymous",
			"email": email,
		},
	}

	_, err := c.execute(ctx, "create customer", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(body).Post(fmt.Sprintf("%s/customers", c.apiURL))
	})
	return err
}
