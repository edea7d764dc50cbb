package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	HeaderWebhookID        = "webhook-id"
	HeaderWebhookTimestamp = "webhook-timestamp"
	HeaderWebhookSignature = "webhook-signature"
)

// signedContent is what the provider signs: "<id>.<timestamp>.<raw body>".
// The raw body bytes must be used exactly as received; re-serializing the
// JSON breaks the signature.
func signedContent(id, timestamp string, body []byte) []byte {
	return []byte(fmt.Sprintf("%s.%s.%s", id, timestamp, body))
}

func computeSignature(secret []byte, id, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(signedContent(id, timestamp, body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// verifySignature checks the webhook-signature header against the shared
// secret. The header holds space-separated "v1,<base64>" entries; any one
// matching accepts the delivery. Comparison is constant time via hmac.Equal.
func verifySignature(secret []byte, headers http.Header, body []byte) error {
	id := headers.Get(HeaderWebhookID)
	timestamp := headers.Get(HeaderWebhookTimestamp)
	sigHeader := headers.Get(HeaderWebhookSignature)
	if timestamp == "" || sigHeader == "" {
		return ErrSignatureInvalid
	}

	expected, err := base64.StdEncoding.DecodeString(computeSignature(secret, id, timestamp, body))
	if err != nil {
		return ErrSignatureInvalid
	}

	for _, entry := range strings.Fields(sigHeader) {
		parts := strings.SplitN(entry, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}
		got, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}
	return ErrSignatureInvalid
}
