// Package checkout builds hosted-checkout sessions with the external payment
// provider. The flow is a one-way handoff: once the session URL is issued the
// browser leaves for the provider's page and no pending state is tracked here.
package checkout

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/guonaihong/gout"
	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/domain"
)

// Config locates the provider and the storefront's own public origin, which
// anchors the success and cancel return URLs.
type Config struct {
	Endpoint  string
	SecretKey string
	Origin    string
}

// Session is the provider's response: the session id and the hosted page URL
// to redirect the buyer to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// MinorUnits converts a USD price to integer cents, rounding half up. This is
// the only point where prices leave main currency units.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// SuccessURL returns the return-trip URL for p. The provider substitutes the
// session token into the template placeholder.
func (c *Client) SuccessURL(p domain.Product) string {
	return fmt.Sprintf("%s/success?session_id={CHECKOUT_SESSION_ID}&product_id=%s", c.cfg.Origin, p.ID)
}

// CreateSession posts a form-encoded session request for a single line item of
// quantity 1 and returns the hosted page to redirect to. Failures surface to
// the caller; no retry is attempted.
func (c *Client) CreateSession(ctx context.Context, p domain.Product, who domain.Identity) (Session, error) {
	form := gout.H{
		"payment_method_types[]":                               "card",
		"line_items[0][price_data][currency]":                  "usd",
		"line_items[0][price_data][product_data][name]":        p.Title,
		"line_items[0][price_data][product_data][description]": p.Description,
		"line_items[0][price_data][unit_amount]":               strconv.FormatInt(MinorUnits(p.Price), 10),
		"line_items[0][quantity]":                              "1",
		"mode":                                                 "payment",
		"success_url":                                          c.SuccessURL(p),
		"cancel_url":                                           c.cfg.Origin,
		"customer_email":                                       who.Email,
		"allow_promotion_codes":                                "true",
		"metadata[product_id]":                                 p.ID,
		"metadata[user_id]":                                    who.ID,
	}

	var (
		sess Session
		code int
	)
	err := gout.POST(c.cfg.Endpoint).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + c.cfg.SecretKey}).
		SetWWWForm(form).
		Code(&code).
		BindJSON(&sess).
		Do()
	if err != nil {
		return Session{}, fmt.Errorf("create checkout session: %w", err)
	}
	if code != 200 || sess.URL == "" {
		zap.L().Error("checkout session rejected",
			zap.Int("status", code), zap.String("productId", p.ID))
		return Session{}, fmt.Errorf("create checkout session: provider returned status %d", code)
	}

	zap.L().Info("checkout session created",
		zap.String("sessionId", sess.ID),
		zap.String("productId", p.ID),
		zap.String("userId", who.ID))
	return sess, nil
}
