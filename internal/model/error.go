package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeAddressNotFound   = "ADDRESS_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeVoucherNotFound   = "VOUCHER_NOT_FOUND"
	ErrCodeVoucherInactive   = "VOUCHER_INACTIVE"
	ErrCodeVoucherNotStarted = "VOUCHER_NOT_STARTED"
	ErrCodeVoucherExpired    = "VOUCHER_EXPIRED"
	ErrCodeVoucherMinOrder   = "VOUCHER_MIN_ORDER"
	ErrCodeVoucherExhausted  = "VOUCHER_EXHAUSTED"
	ErrCodeVoucherConflict   = "VOUCHER_CONFLICT"
	ErrCodeInvalidAddress    = "INVALID_ADDRESS"
	ErrCodeInsufficientFunds = "INSUFFICIENT_POINTS"
	ErrCodePaymentFailed     = "PAYMENT_FAILED"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a user-facing message.
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

// Common domain errors
var (
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrCategoryNotFound  = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrAddressNotFound   = NewDomainError(ErrCodeAddressNotFound, "Delivery address not found")
	ErrUserNotFound      = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrVoucherNotFound   = NewDomainError(ErrCodeVoucherNotFound, "Voucher code not found")
	ErrVoucherInactive   = NewDomainError(ErrCodeVoucherInactive, "Voucher is not active")
	ErrVoucherNotStarted = NewDomainError(ErrCodeVoucherNotStarted, "Voucher is not valid yet")
	ErrVoucherExpired    = NewDomainError(ErrCodeVoucherExpired, "Voucher has expired")
	ErrVoucherMinOrder   = NewDomainError(ErrCodeVoucherMinOrder, "Order amount is below the voucher minimum")
	ErrVoucherExhausted  = NewDomainError(ErrCodeVoucherExhausted, "Voucher usage limit has been reached")
	ErrVoucherConflict   = NewDomainError(ErrCodeVoucherConflict, "Voucher cannot be used in that slot")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidAddress    = NewDomainError(ErrCodeInvalidAddress, "Province, district or ward is not recognised")
	ErrInsufficientFunds = NewDomainError(ErrCodeInsufficientFunds, "Not enough reward points")
	ErrPaymentFailed     = NewDomainError(ErrCodePaymentFailed, "Payment session could not be created")
)
