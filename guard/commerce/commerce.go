// Package commerce implements the UCP commerce transaction backend. It
// re-derives every money amount in a checkout cart and rejects the cart on
// the first arithmetic inconsistency.
package commerce

import (
	"encoding/json"
	"fmt"
	"math"
)

// Result is the commerce verdict shape: this backend reports failures in
// Error and leaves it empty when the cart checks out.
type Result struct {
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// cart is the checkout payload. LineTotal, Tax and Discount are optional;
// absent values default to the derived or zero amount.
type cart struct {
	Items    []cartItem `json:"items"`
	Subtotal *float64   `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Discount float64    `json:"discount"`
	Total    *float64   `json:"total"`
	Currency string     `json:"currency"`
}

type cartItem struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  float64  `json:"quantity"`
	LineTotal *float64 `json:"line_total"`
}

// centTolerance absorbs decimal representation noise; anything off by half a
// cent or more is a real arithmetic error.
const centTolerance = 0.005

// Verifier validates checkout carts. Stateless, safe for concurrent use.
type Verifier struct{}

func NewVerifier() *Verifier { return &Verifier{} }

// VerifyCheckout parses cartJSON and re-computes line totals, the subtotal
// and the grand total.
func (v *Verifier) VerifyCheckout(cartJSON string) Result {
	var c cart
	if err := json.Unmarshal([]byte(cartJSON), &c); err != nil {
		return Result{Error: fmt.Sprintf("invalid cart JSON: %v", err)}
	}
	if len(c.Items) == 0 {
		return Result{Error: "cart has no items"}
	}

	subtotal := 0.0
	for i, item := range c.Items {
		if item.Price < 0 {
			return Result{Error: fmt.Sprintf("item %d (%s): negative price %v", i+1, item.Name, item.Price)}
		}
		if item.Quantity <= 0 {
			return Result{Error: fmt.Sprintf("item %d (%s): quantity must be positive, got %v", i+1, item.Name, item.Quantity)}
		}
		lineTotal := item.Price * item.Quantity
		if item.LineTotal != nil && !closeEnough(*item.LineTotal, lineTotal) {
			return Result{Error: fmt.Sprintf("item %d (%s): line total %v does not match price %v x quantity %v = %v",
				i+1, item.Name, *item.LineTotal, item.Price, item.Quantity, lineTotal)}
		}
		subtotal += lineTotal
	}

	if c.Subtotal != nil && !closeEnough(*c.Subtotal, subtotal) {
		return Result{Error: fmt.Sprintf("subtotal %v does not match item sum %v", *c.Subtotal, subtotal)}
	}
	if c.Tax < 0 || c.Discount < 0 {
		return Result{Error: "tax and discount must not be negative"}
	}

	expectedTotal := subtotal + c.Tax - c.Discount
	if c.Total == nil {
		return Result{Error: "cart is missing the total"}
	}
	if !closeEnough(*c.Total, expectedTotal) {
		return Result{Error: fmt.Sprintf("total %v does not match subtotal %v + tax %v - discount %v = %v",
			*c.Total, subtotal, c.Tax, c.Discount, expectedTotal)}
	}
	return Result{Verified: true}
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < centTolerance
}
