package constants

// 优惠券类型
const (
	CouponTypeFixed      = "fixed"
	CouponTypePercentage = "percentage"
)

// 排序方式
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortSales     = "sales"
	SortNewest    = "newest"
)

// 设备本地存储 key
const (
	StorageKeyCart          = "estore-cart"
	StorageKeyWishlist      = "estore-wishlist"
	StorageKeySearchHistory = "searchHistory"
	StorageKeyAddresses     = "estore-addresses"
)

// 存储驱动
const (
	StorageDriverMemory   = "memory"
	StorageDriverDatabase = "database"
	StorageDriverRedis    = "redis"
)

// 订单状态
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// 队列与任务
const (
	QueueDefault      = "default"
	QueueCritical     = "critical"
	TaskOrderPlaced   = "order:placed"
	OrderNoPrefix     = "ES"
	DefaultCurrency   = "CNY"
	DeviceIDHeader    = "X-Device-ID"
	DeviceContextKey  = "device"
	SessionContextKey = "session"
)

// 用户角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// 搜索建议类型
const (
	SuggestionTypeProduct  = "product"
	SuggestionTypeCategory = "category"
	SuggestionTypeBrand    = "brand"
)
