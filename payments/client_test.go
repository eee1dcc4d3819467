package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionSendsFormEncodedRequest(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		captured = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_abc","url":"https://checkout.example/cs_test_abc"}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_key", server.URL)
	session, err := client.CreateSession(context.Background(), SessionParams{
		LineItems: []LineItem{
			{Name: "Phở Tái", Description: "Spice: Hot", UnitAmount: 1150, Quantity: 2},
			{Name: "Delivery Fee", UnitAmount: 399, Quantity: 1},
		},
		SuccessURL: "http://localhost:3000/success",
		CancelURL:  "http://localhost:3000/?canceled=true",
		Metadata:   map[string]string{MetadataOrderID: "order-123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", session.ID)
	assert.Equal(t, "https://checkout.example/cs_test_abc", session.URL)

	require.NotNil(t, captured)
	assert.Equal(t, "/v1/checkout/sessions", captured.URL.Path)
	assert.Equal(t, "Bearer sk_test_key", captured.Header.Get("Authorization"))
	assert.Equal(t, "payment", captured.PostForm.Get("mode"))
	assert.Equal(t, "card", captured.PostForm.Get("payment_method_types[0]"))
	assert.Equal(t, "Phở Tái", captured.PostForm.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "1150", captured.PostForm.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "2", captured.PostForm.Get("line_items[0][quantity]"))
	assert.Equal(t, "399", captured.PostForm.Get("line_items[1][price_data][unit_amount]"))
	assert.Equal(t, "order-123", captured.PostForm.Get("metadata[orderId]"))
}

func TestCreateSessionReportsProcessorErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_key", server.URL)
	_, err := client.CreateSession(context.Background(), SessionParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}
