package errcodes

// ErrorCode is a machine-readable error identifier that travels from the
// domain layer up to HTTP responses unchanged.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError ErrorCode = "InternalServerError"
	ValidationError     ErrorCode = "ValidationError"
	NotFound            ErrorCode = "NotFound"
	Forbidden           ErrorCode = "Forbidden"

	// Catalog template errors.
	MalformedCatalog ErrorCode = "MalformedCatalog" // document shape or a field value is unusable
	InvalidInventory ErrorCode = "InvalidInventory" // inventory is not a non-negative integer
	InvalidPrice     ErrorCode = "InvalidPrice"     // price is not a decimal number
	UnknownPriceType ErrorCode = "UnknownPriceType" // price_type/custom token not recognized

	// App errors.
	AppNotFound        ErrorCode = "AppNotFound"
	UnsupportedAppType ErrorCode = "UnsupportedAppType"
	InvalidSalesWindow ErrorCode = "InvalidSalesWindow" // days parameter below 1
)
