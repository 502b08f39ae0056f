package public

import (
	"errors"

	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
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

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductOutOfStock, code: response.CodeBadRequest, key: "error.product_out_of_stock"},
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, key: "error.coupon_not_found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, key: "error.coupon_inactive"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, key: "error.coupon_expired"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, key: "error.coupon_min_amount"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrAddressInvalid, code: response.CodeBadRequest, key: "error.address_invalid"},
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, key: "error.address_not_found"},
}

var checkoutPreviewErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrShippingMethodNotFound, code: response.CodeBadRequest, key: "error.shipping_method_not_found"},
}, couponErrorRules)

var checkoutSubmitErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrSubmitInProgress, code: response.CodeConflict, key: "error.submit_in_progress"},
	{target: service.ErrNoSelectedItems, code: response.CodeBadRequest, key: "error.no_selected_items"},
	{target: service.ErrCheckoutFieldsMissing, code: response.CodeBadRequest, key: "error.checkout_fields_missing"},
	{target: service.ErrShippingMethodNotFound, code: response.CodeBadRequest, key: "error.shipping_method_not_found"},
	// 协作者失败已由结算服务记录
	{target: service.ErrOrderSubmitFailed, code: response.CodeInternal, key: "error.order_submit_failed"},
}, addressErrorRules, couponErrorRules)

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrRegisterFields, code: response.CodeBadRequest, key: "error.register_fields_missing"},
	{target: service.ErrPasswordTooShort, code: response.CodeBadRequest, key: "error.password_weak"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

func respondProductError(c *gin.Context, err error) {
	respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
}

func respondCheckoutPreviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutPreviewErrorRules, response.CodeInternal, "error.coupon_fetch_failed")
}

func respondCheckoutSubmitError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutSubmitErrorRules, response.CodeInternal, "error.order_submit_failed")
}

func respondAddressError(c *gin.Context, err error) {
	respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.bad_request")
}

func respondAuthError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, fallbackKey)
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
}
