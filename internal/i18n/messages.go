package i18n

var messages = map[string]map[string]string{
	LocaleZhCN: {
		"error.bad_request":               "请求参数错误",
		"error.unauthorized":              "请先登录",
		"error.forbidden":                 "无权访问",
		"error.auth_header_invalid":       "Authorization 格式错误",
		"error.token_invalid":             "登录状态无效或已过期",
		"error.rate_limited":              "请求过于频繁，请在 %d 秒后重试",
		"error.login_too_many":            "登录尝试次数过多，请在 %d 秒后重试",
		"error.submit_too_many":           "提交过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable":    "限流服务不可用",
		"error.device_id_missing":         "缺少设备标识",
		"error.device_id_invalid":         "设备标识无效",
		"error.product_id_invalid":        "商品ID无效",
		"error.product_not_found":         "商品不存在",
		"error.product_fetch_failed":      "获取商品失败",
		"error.product_out_of_stock":      "商品库存不足",
		"error.quantity_invalid":          "数量无效",
		"error.cart_item_not_found":       "购物车中不存在该商品",
		"error.coupon_not_found":          "优惠券不存在",
		"error.coupon_inactive":           "优惠券未启用",
		"error.coupon_expired":            "优惠券已过期",
		"error.coupon_min_amount":         "未达到优惠券最低消费金额",
		"error.coupon_fetch_failed":       "获取优惠券失败",
		"error.amount_invalid":            "金额格式错误",
		"error.shipping_method_not_found": "配送方式不存在",
		"error.shipping_fetch_failed":     "获取配送方式失败",
		"error.search_failed":             "搜索失败",
		"error.no_selected_items":         "请选择要结算的商品",
		"error.checkout_fields_missing":   "请选择收货地址和配送方式",
		"error.address_invalid":           "收货地址信息不完整",
		"error.address_not_found":         "收货地址不存在",
		"error.submit_in_progress":        "订单正在提交，请勿重复操作",
		"error.order_submit_failed":       "订单提交失败，请重试",
		"error.order_not_found":           "订单不存在",
		"error.order_fetch_failed":        "获取订单失败",
		"error.login_invalid":             "邮箱或密码错误",
		"error.login_failed":              "登录失败",
		"error.email_exists":              "该邮箱已注册",
		"error.register_fields_missing":   "请填写邮箱、密码和昵称",
		"error.password_weak":             "密码至少需要 6 位",
		"error.register_failed":           "注册失败",
	},
	LocaleEnUS: {
		"error.bad_request":               "Invalid request parameters",
		"error.unauthorized":              "Please sign in first",
		"error.forbidden":                 "Access denied",
		"error.auth_header_invalid":       "Malformed Authorization header",
		"error.token_invalid":             "Session is invalid or expired",
		"error.rate_limited":              "Too many requests, please retry in %d seconds",
		"error.login_too_many":            "Too many login attempts, please retry in %d seconds",
		"error.submit_too_many":           "Too many submissions, please retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.device_id_missing":         "Device identifier is required",
		"error.device_id_invalid":         "Device identifier is invalid",
		"error.product_id_invalid":        "Invalid product id",
		"error.product_not_found":         "Product not found",
		"error.product_fetch_failed":      "Failed to load products",
		"error.product_out_of_stock":      "Product is out of stock",
		"error.quantity_invalid":          "Invalid quantity",
		"error.cart_item_not_found":       "Item is not in the cart",
		"error.coupon_not_found":          "Coupon not found",
		"error.coupon_inactive":           "Coupon is not active",
		"error.coupon_expired":            "Coupon has expired",
		"error.coupon_min_amount":         "Order does not reach the coupon minimum",
		"error.coupon_fetch_failed":       "Failed to load coupons",
		"error.amount_invalid":            "Invalid amount",
		"error.shipping_method_not_found": "Shipping method not found",
		"error.shipping_fetch_failed":     "Failed to load shipping methods",
		"error.search_failed":             "Search failed",
		"error.no_selected_items":         "Select at least one item to check out",
		"error.checkout_fields_missing":   "Choose a shipping address and a shipping method",
		"error.address_invalid":           "Shipping address is incomplete",
		"error.address_not_found":         "Shipping address not found",
		"error.submit_in_progress":        "Order submission already in progress",
		"error.order_submit_failed":       "Failed to submit order, please retry",
		"error.order_not_found":           "Order not found",
		"error.order_fetch_failed":        "Failed to load orders",
		"error.login_invalid":             "Invalid email or password",
		"error.login_failed":              "Login failed",
		"error.email_exists":              "Email is already registered",
		"error.register_fields_missing":   "Email, password and name are required",
		"error.password_weak":             "Password must be at least 6 characters",
		"error.register_failed":           "Registration failed",
	},
}
