package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingProduct  = "MISSING_PRODUCT"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeMissingCategory = "MISSING_CATEGORY"
	ErrCodeEmptyCart       = "EMPTY_CART"
	ErrCodeLineNotFound    = "LINE_NOT_FOUND"
	ErrCodeSessionNotFound = "SESSION_NOT_FOUND"
	ErrCodeSaleRejected    = "SALE_REJECTED"
	ErrCodeBackendFailure  = "BACKEND_FAILURE"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Validation errors raised before any backend call is made.
var (
	ErrMissingProduct  = NewDomainError(ErrCodeMissingProduct, "Product is required")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be a positive whole number")
	ErrMissingCategory = NewDomainError(ErrCodeMissingCategory, "Product category could not be resolved")
	ErrEmptyCart       = NewDomainError(ErrCodeEmptyCart, "Cart has no lines")
	ErrLineNotFound    = NewDomainError(ErrCodeLineNotFound, "Cart line does not exist")
	ErrSessionNotFound = NewDomainError(ErrCodeSessionNotFound, "Checkout session does not exist")
)

// SaleRejectedError is a non-success response from the sales endpoint. The
// backend's message is kept verbatim so it can be surfaced to the operator;
// the cart is left untouched for correction and retry.
type SaleRejectedError struct {
	StatusCode int
	Message    string
}

func (e *SaleRejectedError) Error() string {
	if e.Message == "" {
		return "sale rejected by backend"
	}
	return e.Message
}
