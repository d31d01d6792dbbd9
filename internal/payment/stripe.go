package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/jobbotwork/jobbot/internal/model"
)

// CheckoutSession is the reference the gateway hands back for one
// payment attempt.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway creates Stripe Checkout sessions for the package catalog. The
// API client is injected at construction instead of a package-global key.
type Gateway struct {
	api        *client.API
	successURL string
	cancelURL  string
}

func NewGateway(secretKey, successURL, cancelURL string) *Gateway {
	return &Gateway{
		api:        client.New(secretKey, nil),
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateCheckout opens a one-off card payment session for the package,
// priced in cents.
func (g *Gateway) CreateCheckout(ctx context.Context, pkg model.Package) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("JobBot %s Package", pkg.Name)),
					},
					UnitAmount: stripe.Int64(pkg.AmountCents()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}
