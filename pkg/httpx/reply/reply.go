package reply

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"pos_catalog/internal/domain"
	"pos_catalog/pkg/contextx"
	"pos_catalog/pkg/errcodes"
	"pos_catalog/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	code, ok := domain.GetCode(err)
	if !ok {
		code = errcodes.InternalServerError
	}

	response := errorResponse{
		Code:      code.String(),
		Message:   domain.Description(err),
		SupportID: supportID(ctx),
	}

	JSON(ctx, w, statusCode(code), response)
}

func statusCode(code errcodes.ErrorCode) int {
	switch code {
	case errcodes.ValidationError,
		errcodes.MalformedCatalog,
		errcodes.InvalidInventory,
		errcodes.InvalidPrice,
		errcodes.UnknownPriceType,
		errcodes.InvalidSalesWindow:
		return http.StatusBadRequest
	case errcodes.NotFound, errcodes.AppNotFound:
		return http.StatusNotFound
	case errcodes.Forbidden:
		return http.StatusForbidden
	case errcodes.UnsupportedAppType:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return ""
	}

	return traceID.String()
}
