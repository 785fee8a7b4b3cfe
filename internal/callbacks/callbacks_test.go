package callbacks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-tg-bot/internal/callbacks"
)

func TestAddToCartRoundTrip(t *testing.T) {
	token := callbacks.EncodeAddToCart("p1", 1)

	payload, err := callbacks.DecodeAddToCart(token)

	require.NoError(t, err)
	assert.Equal(t, "p1", payload.ProductID)
	assert.Equal(t, 1, payload.Quantity)
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	malformed := []string{
		"",
		"not json",
		"{",
		`{"id":"p1"}`,
		`{"id":"p1","amount":0}`,
		`{"id":"","amount":2}`,
		`{"amount":2}`,
		"42",
		`["p1",1]`,
	}

	for _, token := range malformed {
		_, err := callbacks.DecodeAddToCart(token)
		assert.ErrorIs(t, err, callbacks.ErrMalformedToken, "token %q", token)
	}
}

func TestSentinelsNeverCollideWithEncodedTokens(t *testing.T) {
	sentinels := []string{
		callbacks.BackToMenu,
		callbacks.ShowCart,
		callbacks.Checkout,
		callbacks.NextPage,
		callbacks.PreviousPage,
	}

	for _, sentinel := range sentinels {
		assert.True(t, callbacks.IsSentinel(sentinel))
		_, err := callbacks.DecodeAddToCart(sentinel)
		assert.ErrorIs(t, err, callbacks.ErrMalformedToken)
	}

	assert.False(t, callbacks.IsSentinel(callbacks.EncodeAddToCart("p1", 1)))
}
