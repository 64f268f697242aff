package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusNotLoggedIn            = http.StatusUnauthorized
	ErrStatusUnauthorized           = http.StatusUnauthorized
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
	ErrStatusConflict               = http.StatusConflict
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrInvalidID               = errors.New("Invalid id")
	ErrNotLoggedIn             = errors.New("Invalid or expired JWT")
	ErrInvalidCredentialsEmail = errors.New("Invalid email or password")
	ErrUnauthorized            = errors.New("Not authorized to update this user")
	ErrWrongPassword           = errors.New("Current password is incorrect")
	ErrNotFound                = errors.New("Resource not found")
	ErrAccountNotFound         = errors.New("User not found")
	ErrProductNotFound         = errors.New("Product not found")
	ErrCategoryNotFound        = errors.New("Category not found")
	ErrReviewNotFound          = errors.New("Review not found")
	ErrOrderNotFound           = errors.New("Order not found")
	ErrNoOrdersFound           = errors.New("No orders found with provided contact number")
	ErrOrderDetailsNotFound    = errors.New("Order not found with provided details")
	ErrUserAlreadyExists       = errors.New("User already exists")
	ErrDuplicateName           = errors.New("Duplicate name found")
	ErrNotAnImage              = errors.New("Please upload only images")
	ErrFileSizeExceedingLimit  = errors.New("File too large")
	ErrTooManyFiles            = errors.New("Too many files")
	ErrVariantsRequired        = errors.New("Variants are required")
	ErrInvalidVariants         = errors.New("Invalid variants data")
	ErrDuplicateVariantColor   = errors.New("Duplicate variant color")
	ErrInvalidStatus           = errors.New("Invalid order status")
	ErrItemProductMissing      = errors.New("Product not found")
	ErrItemColorMissing        = errors.New("Color not found for product")
	ErrInsufficientInventory   = errors.New("Insufficient inventory")
	ErrTrackingFieldsRequired  = errors.New("Required tracking fields are missing")
)

// statusTable is walked in order, so wrapped sentinels resolve to the first match.
var statusTable = []struct {
	err    error
	status int
}{
	{ErrInternalServer, ErrStatusInternalServer},
	{ErrClient, ErrStatusClient},
	{ErrInvalidID, ErrStatusClient},
	{ErrNotLoggedIn, ErrStatusNotLoggedIn},
	{ErrInvalidCredentialsEmail, ErrStatusUnauthorized},
	{ErrUnauthorized, ErrStatusUnauthorized},
	{ErrWrongPassword, ErrStatusUnauthorized},
	{ErrNotFound, ErrStatusNotFound},
	{ErrAccountNotFound, ErrStatusNotFound},
	{ErrProductNotFound, ErrStatusNotFound},
	{ErrCategoryNotFound, ErrStatusNotFound},
	{ErrReviewNotFound, ErrStatusNotFound},
	{ErrOrderNotFound, ErrStatusNotFound},
	{ErrNoOrdersFound, ErrStatusNotFound},
	{ErrOrderDetailsNotFound, ErrStatusNotFound},
	{ErrUserAlreadyExists, ErrStatusClient},
	{ErrDuplicateName, ErrStatusConflict},
	{ErrNotAnImage, ErrStatusClient},
	{ErrFileSizeExceedingLimit, ErrStatusFileSizeExceedingLimit},
	{ErrTooManyFiles, ErrStatusClient},
	{ErrVariantsRequired, ErrStatusClient},
	{ErrInvalidVariants, ErrStatusClient},
	{ErrDuplicateVariantColor, ErrStatusClient},
	{ErrInvalidStatus, ErrStatusClient},
	{ErrItemProductMissing, ErrStatusClient},
	{ErrItemColorMissing, ErrStatusClient},
	{ErrInsufficientInventory, ErrStatusClient},
	{ErrTrackingFieldsRequired, ErrStatusClient},
}

// FieldError is a single failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// ValidationErrors is returned by request validation. Its message names the first
// failing field the way the storefront expects, e.g. "customerName is required".
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ErrClient.Error()
	}

	first := v[0]
	switch first.Tag {
	case "required":
		return first.Field + " is required"
	case "oneof":
		return first.Field + " has an invalid value"
	default:
		return first.Field + " is invalid"
	}
}

func GetErrorStatusCode(err error) int {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return ErrStatusClient
	}

	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}

	return ErrStatusInternalServer
}

type detailedError struct {
	sentinel error
	message  string
}

func (e *detailedError) Error() string {
	return e.message
}

func (e *detailedError) Unwrap() error {
	return e.sentinel
}

// WithMessage keeps the sentinel (and so the status code) but replaces the message.
func WithMessage(sentinel error, format string, args ...interface{}) error {
	return &detailedError{sentinel: sentinel, message: fmt.Sprintf(format, args...)}
}
