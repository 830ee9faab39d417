package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

// APIError is the error body shape.
// Example: { "error": { "code": "budget_exceeded", "message": "..." } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response.
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// BadRequest reports an unparseable request body.
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

// CallError maps the gateway error taxonomy onto HTTP statuses: budget
// rejections are 429 (retry later), upstream and protocol failures are 502.
func CallError(ctx *gin.Context, err error) {
	var capErr *models.BudgetExceededError
	if errors.As(err, &capErr) {
		ctx.JSON(http.StatusTooManyRequests, errorResponse{Error: APIError{
			Code:    "budget_exceeded",
			Kind:    string(capErr.Kind),
			Message: err.Error(),
		}})
		return
	}

	var upErr *models.UpstreamError
	if errors.As(err, &upErr) {
		JSONError(ctx, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	var protoErr *models.PaymentProtocolError
	if errors.As(err, &protoErr) {
		JSONError(ctx, http.StatusBadGateway, "payment_protocol_error", err.Error())
		return
	}

	JSONError(ctx, http.StatusInternalServerError, "internal_error", err.Error())
}
