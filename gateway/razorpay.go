// Package gateway adapts the external payment processor to the service
// layer's PaymentGateway contract.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devcom-labs/devcom-store/services"
	"github.com/devcom-labs/devcom-store/utils"
	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway creates razorpay orders, which act as the payment
// sessions the checkout flow hands to the client.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

// NewRazorpayGateway creates a gateway from the configured key pair.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

// KeyID returns the public key id the client-side widget needs.
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateSession creates a razorpay order for the given minor-unit amount.
// The SDK call does not take a context, so it runs on its own goroutine
// and the context deadline is enforced here: on timeout the outcome is
// unknown and reported as a gateway failure.
func (g *RazorpayGateway) CreateSession(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*services.PaymentSession, error) {
	type result struct {
		order map[string]interface{}
		err   error
	}
	done := make(chan result, 1)

	go func() {
		order, err := g.client.Order.Create(map[string]interface{}{
			"amount":          amountMinorUnits,
			"currency":        currency,
			"receipt":         receipt,
			"payment_capture": 1,
		}, nil)
		done <- result{order: order, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, utils.GatewayError(http.StatusGatewayTimeout,
			"Payment processor did not respond in time", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, utils.GatewayError(http.StatusBadGateway, res.err.Error(), res.err)
		}
		id, ok := res.order["id"].(string)
		if !ok || id == "" {
			return nil, utils.GatewayError(http.StatusBadGateway,
				"Payment processor returned no session id", nil)
		}
		return &services.PaymentSession{
			ID:       id,
			Amount:   amountMinorUnits,
			Currency: currency,
			Receipt:  fmt.Sprintf("%v", res.order["receipt"]),
		}, nil
	}
}
