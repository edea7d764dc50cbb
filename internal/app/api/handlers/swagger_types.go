package handlers

import (
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespListPurchases wraps the admin purchase listing in the standard envelope.
type RespListPurchases struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    purchase.ScanResponse    `json:"data"`
}

// RespCreateCheckout wraps CreateCheckoutResponse in the standard envelope.
type RespCreateCheckout struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    CreateCheckoutResponse   `json:"data"`
}

// RespVerifyCheckout wraps VerifyCheckoutResponse in the standard envelope.
type RespVerifyCheckout struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    VerifyCheckoutResponse   `json:"data"`
}
