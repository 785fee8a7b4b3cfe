package elasticpath

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
)

// GetFileLink gets the public URL of an uploaded file.
func (c *Client) GetFileLink(ctx context.Context, fileID string) (string, error) {
	resp, err := c.execute(ctx, "get file", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("%s/files/%s", c.apiURL, fileID))
	})
	if err != nil {
		return "", err
	}

	var envelope struct {
		Data struct {
			Link struct {
				Href string `json:"href"`
			} `json:"link"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return "", fmt.Errorf("failed to parse file response: %w", err)
	}

	return envelope.Data.Link.Href, nil
}

// CreateFile uploads a public file and returns its id.
func (c *Client) CreateFile(ctx context.Context, fileName string, content io.Reader) (string, error) {
	resp, err := c.execute(ctx, "create file", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetFileReader("file", fileName, content).
			SetMultipartFormData(map[string]string{"public": "true"}).
			Post(fmt.Sprintf("%s/files", c.apiURL))
	})
	if err != nil {
		return "", err
	}

	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return "", fmt.Errorf("failed to parse create file response: %w", err)
	}

	return envelope.Data.ID, nil
}
