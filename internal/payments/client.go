package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"businessconnect-backend/internal/shared/telemetry"
)

// ErrGateway indicates the payment provider rejected or failed a request.
var ErrGateway = errors.New("payment gateway error")

// Request asks the provider to open a payment session.
type Request struct {
	Ref         string
	AmountFCFA  int64
	ItemName    string
	CallbackURL string
	IPNURL      string
}

// Intent is the provider's answer: where to send the payer.
type Intent struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Gateway opens payment sessions with an external provider.
type Gateway interface {
	RequestPayment(ctx context.Context, req Request) (Intent, error)
	VerifySignature(ref, amount, signature string) bool
}

// PayTechClient talks to the PayTech HTTP API.
type PayTechClient struct {
	http      *resty.Client
	apiKey    string
	apiSecret string
}

// NewPayTechClient constructs a gateway client with retries against
// transient provider failures.
func NewPayTechClient(baseURL, apiKey, apiSecret string) *PayTechClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetTimeout(15*time.Second).
		SetHeader("API_KEY", apiKey).
		SetHeader("API_SECRET", apiSecret)

	return &PayTechClient{
		http:      client,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

type paymentRequestBody struct {
	ItemName    string `json:"item_name"`
	ItemPrice   int64  `json:"item_price"`
	RefCommand  string `json:"ref_command"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"success_url"`
	IPNURL      string `json:"ipn_url"`
}

// RequestPayment opens a payment session and returns the redirect URL
// for the payer.
func (c *PayTechClient) RequestPayment(ctx context.Context, req Request) (Intent, error) {
	if req.Ref == "" || req.AmountFCFA <= 0 {
		return Intent{}, fmt.Errorf("%w: reference and positive amount required", ErrGateway)
	}

	var intent Intent
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(paymentRequestBody{
			ItemName:    req.ItemName,
			ItemPrice:   req.AmountFCFA,
			RefCommand:  req.Ref,
			Currency:    "XOF",
			CallbackURL: req.CallbackURL,
			IPNURL:      req.IPNURL,
		}).
		SetResult(&intent).
		Post("/payment/request-payment")
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if resp.IsError() {
		telemetry.Error("payments.request_failed", map[string]any{
			"status": resp.StatusCode(),
			"ref":    req.Ref,
		})
		return Intent{}, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode())
	}
	if intent.RedirectURL == "" {
		return Intent{}, fmt.Errorf("%w: empty redirect url", ErrGateway)
	}
	return intent, nil
}

// VerifySignature checks an IPN notification. The provider signs
// notifications with sha256(apiKey + apiSecret + ref + amount).
func (c *PayTechClient) VerifySignature(ref, amount, signature string) bool {
	if signature == "" {
		return false
	}
	sum := sha256.Sum256([]byte(c.apiKey + c.apiSecret + ref + amount))
	return hex.EncodeToString(sum[:]) == strings.ToLower(signature)
}

var _ Gateway = (*PayTechClient)(nil)
