package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestPaymentReturnsRedirect(t *testing.T) {
	var gotBody paymentRequestBody
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment/request-payment" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("API_KEY") != "key-1" {
			t.Errorf("API_KEY header = %q", r.Header.Get("API_KEY"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Intent{Token: "tok-1", RedirectURL: "https://pay.example/tok-1"})
	}))
	defer ts.Close()

	client := NewPayTechClient(ts.URL, "key-1", "secret-1")
	intent, err := client.RequestPayment(context.Background(), Request{
		Ref:        "sub-42",
		AmountFCFA: 5000,
		ItemName:   "Abonnement Premium",
	})
	if err != nil {
		t.Fatalf("RequestPayment: %v", err)
	}
	if intent.RedirectURL != "https://pay.example/tok-1" {
		t.Errorf("redirect = %q", intent.RedirectURL)
	}
	if gotBody.RefCommand != "sub-42" || gotBody.ItemPrice != 5000 || gotBody.Currency != "XOF" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestRequestPaymentGatewayError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewPayTechClient(ts.URL, "bad", "bad")
	_, err := client.RequestPayment(context.Background(), Request{Ref: "sub-1", AmountFCFA: 1000})
	if !errors.Is(err, ErrGateway) {
		t.Fatalf("err = %v, want ErrGateway", err)
	}
}

func TestRequestPaymentValidatesInput(t *testing.T) {
	client := NewPayTechClient("https://pay.example", "k", "s")
	if _, err := client.RequestPayment(context.Background(), Request{Ref: "", AmountFCFA: 100}); !errors.Is(err, ErrGateway) {
		t.Errorf("empty ref: err = %v", err)
	}
	if _, err := client.RequestPayment(context.Background(), Request{Ref: "r", AmountFCFA: 0}); !errors.Is(err, ErrGateway) {
		t.Errorf("zero amount: err = %v", err)
	}
}

func TestVerifySignature(t *testing.T) {
	client := NewPayTechClient("https://pay.example", "key-1", "secret-1")

	sum := sha256.Sum256([]byte("key-1" + "secret-1" + "sub-42" + "5000"))
	good := hex.EncodeToString(sum[:])

	if !client.VerifySignature("sub-42", "5000", good) {
		t.Error("valid signature rejected")
	}
	if !client.VerifySignature("sub-42", "5000", strings.ToUpper(good)) {
		t.Error("uppercase signature rejected")
	}
	if client.VerifySignature("sub-42", "5000", "") {
		t.Error("empty signature accepted")
	}
	if client.VerifySignature("sub-43", "5000", good) {
		t.Error("signature for different ref accepted")
	}
}
