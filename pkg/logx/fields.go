package logx

const (
	FieldAppID      = "app-id"
	FieldAppName    = "app-name"
	FieldAppType    = "app-type"
	FieldAppVersion = "app-version"
	FieldCurrency   = "currency"
	FieldDays       = "days"
	FieldDurationMs = "duration-ms"
	FieldError      = "error"
	FieldHTTPMethod = "http-method"
	FieldIP         = "ip"
	FieldItemCount  = "item-count"
	FieldOrderCount = "order-count"
	FieldStack      = "stack"
	FieldStoreID    = "store-id"
	FieldTraceID    = "trace-id"
	FieldURL        = "url"
)
