package provider

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func signedHeaders(secret, id, ts string, body []byte) http.Header {
	h := http.Header{}
	h.Set(HeaderWebhookID, id)
	h.Set(HeaderWebhookTimestamp, ts)
	h.Set(HeaderWebhookSignature, "v1,"+computeSignature([]byte(secret), id, ts, body))
	return h
}

func TestVerifySignature_Valid(t *testing.T) {
	body := []byte(`{"type":"order.paid"}`)
	h := signedHeaders("whsec_test", "msg_1", "1700000000", body)

	require.NoError(t, verifySignature([]byte("whsec_test"), h, body))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	body := []byte(`{"type":"order.paid"}`)
	h := signedHeaders("whsec_other", "msg_1", "1700000000", body)

	err := verifySignature([]byte("whsec_test"), h, body)
	require.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestVerifySignature_TamperedBody(t *testing.T) {
	body := []byte(`{"type":"order.paid","data":{"totalAmount":1900}}`)
	h := signedHeaders("whsec_test", "msg_1", "1700000000", body)

	tampered := []byte(`{"type":"order.paid","data":{"totalAmount":1}}`)
	err := verifySignature([]byte("whsec_test"), h, tampered)
	require.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestVerifySignature_MissingHeaders(t *testing.T) {
	body := []byte(`{}`)
	err := verifySignature([]byte("whsec_test"), http.Header{}, body)
	require.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestVerifySignature_MultipleEntries(t *testing.T) {
	body := []byte(`{"type":"order.paid"}`)
	id, ts := "msg_1", "1700000000"
	good := computeSignature([]byte("whsec_test"), id, ts, body)

	h := http.Header{}
	h.Set(HeaderWebhookID, id)
	h.Set(HeaderWebhookTimestamp, ts)
	h.Set(HeaderWebhookSignature, "v1,AAAA v1,"+good)

	require.NoError(t, verifySignature([]byte("whsec_test"), h, body))
}

func TestVerifyWebhook_ParsesEvent(t *testing.T) {
	c := &Client{webhookSecret: []byte("whsec_test")}
	body := []byte(`{"id":"evt_1","type":"order.paid","data":{"id":"chk_123","totalAmount":1900,"currency":"usd","metadata":{"userId":"u1"}}}`)
	h := signedHeaders("whsec_test", "msg_1", "1700000000", body)

	ev, err := c.VerifyWebhook(body, h)
	require.NoError(t, err)
	require.Equal(t, EventTypeOrderPaid, ev.Type)
	require.Equal(t, "chk_123", ev.Data.ID)
	require.Equal(t, int64(1900), ev.Data.TotalAmount)
	require.Equal(t, "u1", ev.Data.Metadata.UserID)
}

func TestVerifyWebhook_MalformedBodyAfterValidSignature(t *testing.T) {
	c := &Client{webhookSecret: []byte("whsec_test")}
	body := []byte(`not json`)
	h := signedHeaders("whsec_test", "msg_1", "1700000000", body)

	_, err := c.VerifyWebhook(body, h)
	require.True(t, errors.Is(err, ErrMalformed))
	require.False(t, errors.Is(err, ErrSignatureInvalid))
}
