package elasticpath

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"shop-tg-bot/internal/config"
	"shop-tg-bot/internal/constants"
)

const (
	defaultAuthURL = "https://api.moltin.com/oauth/access_token"
	defaultAPIURL  = "https://api.moltin.com/v2"

	tokenCacheKey = "access_token"
)

// Client represents an Elastic Path API client. The access token is
// cached until shortly before its reported expiry and refreshed behind a
// mutex, so a burst of expired requests triggers a single re-authorization.
type Client struct {
	httpClient *resty.Client
	authURL    string
	apiURL     string

	clientID     string
	clientSecret string

	tokenCache *cache.Cache
	authMu     sync.Mutex

	logger *logrus.Logger
}

// NewClient creates a new Elastic Path API client
func NewClient(cfg config.ElasticpathConfig, logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(constants.DefaultTimeout * time.Second).
		SetRetryCount(constants.DefaultRetryCount).
		SetRetryWaitTime(constants.DefaultRetryWaitTime * time.Second).
		SetRetryMaxWaitTime(constants.DefaultRetryMaxWaitTime * time.Second).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			r.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})

	return &Client{
		httpClient: httpClient,
		authURL:    defaultAuthURL,
		apiURL:     defaultAPIURL,

		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,

		tokenCache: cache.New(cache.NoExpiration, constants.CacheCleanupInterval*time.Minute),
		logger:     logger,
	}
}

// SetBaseURLs overrides the auth and API endpoints. Used in tests.
func (c *Client) SetBaseURLs(authURL, apiURL string) {
	c.authURL = authURL
	c.apiURL = apiURL
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	Expires     int64  `json:"expires"`
}

// token returns a valid access token, authorizing against the token
// endpoint when the cached one is missing or expired.
func (c *Client) token(ctx context.Context) (string, error) {
	if tok, found := c.tokenCache.Get(tokenCacheKey); found {
		return tok.(string), nil
	}

	c.authMu.Lock()
	defer c.authMu.Unlock()

	// Another request may have refreshed the token while we waited.
	if tok, found := c.tokenCache.Get(tokenCacheKey); found {
		return tok.(string), nil
	}

	form := map[string]string{
		"client_id":  c.clientID,
		"grant_type": "implicit",
	}
	if c.clientSecret != "" {
		form["client_secret"] = c.clientSecret
		form["grant_type"] = "client_credentials"
	}

	c.logger.Infof("Authorizing at Elastic Path API (grant: %s)", form["grant_type"])

	var auth authResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&auth).
		Post(c.authURL)

	if err != nil {
		return "", fmt.Errorf("authorization request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("Authorization failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return "", &APIError{Operation: "authorize", Status: resp.StatusCode(), Message: string(resp.Body())}
	}

	ttl := time.Until(time.Unix(auth.Expires, 0)) - constants.TokenExpirationMargin*time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	c.tokenCache.Set(tokenCacheKey, auth.AccessToken, ttl)

	return auth.AccessToken, nil
}

// execute performs an authorized request. A 401 response invalidates the
// cached token and the request is retried once with a fresh one.
func (c *Client) execute(ctx context.Context, op string, send func(r *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	var resp *resty.Response

	for attempt := 0; attempt < 2; attempt++ {
		tok, err := c.token(ctx)
		if err != nil {
			return nil, err
		}

		resp, err = send(c.httpClient.R().SetContext(ctx).SetAuthToken(tok))
		if err != nil {
			return nil, fmt.Errorf("%s request failed: %w", op, err)
		}

		if resp.StatusCode() == http.StatusUnauthorized && attempt == 0 {
			c.logger.Warnf("Access token rejected during %s, re-authorizing", op)
			c.tokenCache.Delete(tokenCacheKey)
			continue
		}
		break
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.IsError() {
		c.logger.Errorf("%s failed - Status: %d, Response: %s", op, resp.StatusCode(), string(resp.Body()))
		return nil, &APIError{Operation: op, Status: resp.StatusCode(), Message: string(resp.Body())}
	}

	return resp, nil
}
