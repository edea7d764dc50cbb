package response

import "net/http"

type APIResponseCode int

const (
	APIResponseCodeOK           APIResponseCode = 0
	APIResponseCodeBadRequest   APIResponseCode = 40000
	APIResponseCodeUnauthorized APIResponseCode = 40100
	APIResponseCodeForbidden    APIResponseCode = 40300
	APIResponseCodeNotFound     APIResponseCode = 40400
	APIResponseCodeConflict     APIResponseCode = 40900
	APIResponseCodeError        APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:           "ok",
	APIResponseCodeBadRequest:   "bad request",
	APIResponseCodeUnauthorized: "unauthorized",
	APIResponseCodeForbidden:    "forbidden",
	APIResponseCodeNotFound:     "not found",
	APIResponseCodeConflict:     "conflict",
	APIResponseCodeError:        "unexpected error",
}

var codeToHTTPStatus = map[APIResponseCode]int{
	APIResponseCodeOK:           http.StatusOK,
	APIResponseCodeBadRequest:   http.StatusBadRequest,
	APIResponseCodeUnauthorized: http.StatusUnauthorized,
	APIResponseCodeForbidden:    http.StatusForbidden,
	APIResponseCodeNotFound:     http.StatusNotFound,
	APIResponseCodeConflict:     http.StatusConflict,
	APIResponseCodeError:        http.StatusInternalServerError,
}

// HTTPStatus maps an envelope code to its HTTP status code.
func (c APIResponseCode) HTTPStatus() int {
	if s, ok := codeToHTTPStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances. The Message field carries
// only stable, client-safe text; internal error detail stays in logs.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response with the code's canonical message.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}

// ErrorMsg returns an error response with an explicit client-facing message.
func ErrorMsg(code APIResponseCode, msg string) *APIResponse[any] {
	return &APIResponse[any]{Code: code, Message: msg}
}
