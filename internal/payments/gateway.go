package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Intent is the gateway-side payment intent handed back to the payer's
// client: the opaque intent id plus the client secret used to confirm the
// charge.
type Intent struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// Gateway creates payment intents. Amounts are in the smallest currency
// unit; the currency is fixed to USD.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64) (*Intent, error)
}

// StripeGateway is the Stripe-backed Gateway.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a gateway bound to a secret key.
func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

// CreateIntent is a pure passthrough to the gateway; no local state.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &Intent{ClientSecret: pi.ClientSecret, PaymentIntentID: pi.ID}, nil
}
