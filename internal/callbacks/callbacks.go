package callbacks

import (
	"encoding/json"
	"errors"
	"strings"
)

// Fixed navigation tokens carried on inline buttons. Add-to-cart tokens are
// JSON objects, so the leading '{' keeps the two alphabets from colliding.
const (
	BackToMenu   = "back to menu"
	ShowCart     = "show cart"
	Checkout     = "checkout"
	NextPage     = "next page"
	PreviousPage = "previous page"
)

// ErrMalformedToken is returned when a callback payload cannot be decoded.
// Callers treat it as unrecognized input, not as a failure.
var ErrMalformedToken = errors.New("malformed callback token")

// AddToCart identifies a product and the quantity to add to the cart.
type AddToCart struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"amount"`
}

// EncodeAddToCart serializes an add-to-cart intent for use as callback data.
func EncodeAddToCart(productID string, quantity int) string {
	data, _ := json.Marshal(AddToCart{ProductID: productID, Quantity: quantity})
	return string(data)
}

// DecodeAddToCart parses callback data produced by EncodeAddToCart.
func DecodeAddToCart(token string) (AddToCart, error) {
	if !strings.HasPrefix(token, "{") {
		return AddToCart{}, ErrMalformedToken
	}

	var payload AddToCart
	if err := json.Unmarshal([]byte(token), &payload); err != nil {
		return AddToCart{}, ErrMalformedToken
	}
	if payload.ProductID == "" || payload.Quantity < 1 {
		return AddToCart{}, ErrMalformedToken
	}
	return payload, nil
}

// IsSentinel reports whether the token is one of the fixed navigation tokens.
func IsSentinel(token string) bool {
	switch token {
	case BackToMenu, ShowCart, Checkout, NextPage, PreviousPage:
		return true
	}
	return false
}
