package payments

import (
	"encoding/json"
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeClient implements Client and Verifier against the real Stripe API.
type StripeClient struct {
	api           *client.API
	domain        string // public base URL for success/cancel redirects
	webhookSecret string
}

func NewStripeClient(apiKey, domain, webhookSecret string) *StripeClient {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeClient{api: api, domain: domain, webhookSecret: webhookSecret}
}

func (s *StripeClient) CreateCheckoutSession(clientRef string, items []LineItem) (CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(it.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(it.UnitAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("%s (%s)", it.Name, it.Size)),
					Metadata: map[string]string{
						"item_id": strconv.FormatInt(it.ItemID, 10),
						"size":    it.Size,
					},
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.domain + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.domain + "/cart"),
		AutomaticTax: &stripe.CheckoutSessionAutomaticTaxParams{
			Enabled: stripe.Bool(false),
		},
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US", "CA"}),
		},
	}
	if clientRef != "" {
		params.ClientReferenceID = stripe.String(clientRef)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, err
	}
	return CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeClient) GetCheckoutSession(id string) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("line_items.data.price.product")
	params.AddExpand("customer_details")

	sess, err := s.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return CheckoutSession{}, err
	}

	out := CheckoutSession{
		ID:               sess.ID,
		URL:              sess.URL,
		AmountTotalCents: sess.AmountTotal,
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}
	if sess.LineItems != nil {
		for _, li := range sess.LineItems.Data {
			line := SessionLineItem{
				Description: li.Description,
				Quantity:    li.Quantity,
			}
			if li.Price != nil {
				line.UnitAmountCents = li.Price.UnitAmount
				if li.Price.Product != nil {
					line.ProductName = li.Price.Product.Name
					line.Metadata = li.Price.Product.Metadata
				}
			}
			out.LineItems = append(out.LineItems, line)
		}
	}
	return out, nil
}

func (s *StripeClient) VerifyEvent(payload []byte, sigHeader string) (Event, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return Event{}, err
	}
	out := Event{Type: string(ev.Type)}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(ev.Data.Raw, &obj); err != nil {
		return Event{}, fmt.Errorf("decode event object: %w", err)
	}
	out.SessionID = obj.ID
	return out, nil
}
