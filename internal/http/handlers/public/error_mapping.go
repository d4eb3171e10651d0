package public

import (
	"errors"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var visitValidateErrorRules = []mappedHandlerError{
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
	{target: service.ErrRestaurantInactive, code: response.CodeBadRequest, key: "error.restaurant_inactive"},
	{target: service.ErrInvalidVisitCode, code: response.CodeBadRequest, key: "error.invalid_code"},
	{target: service.ErrInvalidVisitAmount, code: response.CodeBadRequest, key: "error.invalid_amount"},
}

var promotionClaimErrorRules = []mappedHandlerError{
	{target: service.ErrPromotionNotFound, code: response.CodeNotFound, key: "error.promotion_not_found"},
	{target: service.ErrPromotionInactive, code: response.CodeBadRequest, key: "error.promotion_inactive"},
	{target: service.ErrPromotionExhausted, code: response.CodeConflict, key: "error.promotion_exhausted"},
}

func respondVisitValidateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, visitValidateErrorRules, response.CodeInternal, "error.visit_failed")
}

func respondPromotionClaimError(c *gin.Context, err error) {
	respondWithMappedError(c, err, promotionClaimErrorRules, response.CodeInternal, "error.fetch_failed")
}
