package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estore-next/internal/config"
	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/provider"
	"github.com/estore-next/internal/queue"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

func setupRouterTest(t *testing.T, redisClient *redis.Client, mutate func(cfg *config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Decode(v)
	if err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	cfg.Storage.Driver = constants.StorageDriverMemory
	cfg.Search.DebounceMS = 10
	if mutate != nil {
		mutate(cfg)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := models.SeedCatalog(db, false); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	queueClient, _ := queue.NewClient(nil)
	container, err := provider.Build(cfg, db, queueClient, redisClient)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	return SetupRouter(cfg, container)
}

func call(t *testing.T, r http.Handler, method, path, body string, headers map[string]string) apiResponse {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s unmarshal failed: %v (%s)", method, path, err, w.Body.String())
	}
	return resp
}

func decodeData(t *testing.T, resp apiResponse, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, dest); err != nil {
		t.Fatalf("decode data failed: %v (%s)", err, string(resp.Data))
	}
}

func device(id string) map[string]string {
	return map[string]string{constants.DeviceIDHeader: id}
}

func TestHealth(t *testing.T) {
	r := setupRouterTest(t, nil, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"storage_driver":"memory"`) {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestCatalogRoutes(t *testing.T) {
	r := setupRouterTest(t, nil, nil)

	resp := call(t, r, http.MethodGet, "/api/v1/products?query=apple&sort=price-asc", "", nil)
	var result struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	decodeData(t, resp, &result)
	if resp.StatusCode != 0 || result.Total != 3 {
		t.Fatalf("apple search want 3 results got %d (%s)", result.Total, resp.Msg)
	}
	if result.Items[0].ID != 3 || result.Items[2].ID != 1 {
		t.Fatalf("price-asc order wrong: %d..%d", result.Items[0].ID, result.Items[2].ID)
	}

	resp = call(t, r, http.MethodGet, "/api/v1/products?in_stock=true&brands=Samsung,Sony", "", nil)
	decodeData(t, resp, &result)
	if result.Total != 1 || result.Items[0].ID != 6 {
		t.Fatalf("in-stock brand filter want [6] got %+v", result.Items)
	}

	resp = call(t, r, http.MethodGet, "/api/v1/products?price_min=abc", "", nil)
	if resp.StatusCode != 400 {
		t.Fatalf("bad price want 400 got %d", resp.StatusCode)
	}

	resp = call(t, r, http.MethodGet, "/api/v1/products/facets", "", nil)
	if resp.StatusCode != 0 || !strings.Contains(string(resp.Data), `"name":"Apple","count":3`) {
		t.Fatalf("facets missing apple count: %s", string(resp.Data))
	}

	resp = call(t, r, http.MethodGet, "/api/v1/products/999", "", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown product want 404 got %d", resp.StatusCode)
	}

	resp = call(t, r, http.MethodGet, "/api/v1/coupons?subtotal=150", "", nil)
	var coupons struct {
		Usable      []models.Coupon `json:"usable_coupons"`
		Unavailable []models.Coupon `json:"unavailable_coupons"`
	}
	decodeData(t, resp, &coupons)
	if len(coupons.Usable) != 2 || len(coupons.Unavailable) != 2 {
		t.Fatalf("coupon partition want 2/2 got %d/%d", len(coupons.Usable), len(coupons.Unavailable))
	}

	resp = call(t, r, http.MethodGet, "/api/v1/search/suggestions?q=apple", "", nil)
	if resp.StatusCode != 0 || !strings.Contains(string(resp.Data), `"type":"brand"`) {
		t.Fatalf("suggestions missing brand entry: %s", string(resp.Data))
	}
}

func TestDeviceRoutesRequireHeader(t *testing.T) {
	r := setupRouterTest(t, nil, nil)
	if resp := call(t, r, http.MethodGet, "/api/v1/cart", "", nil); resp.StatusCode != 400 {
		t.Fatalf("missing device want 400 got %d", resp.StatusCode)
	}
	if resp := call(t, r, http.MethodGet, "/api/v1/cart", "", device("bad id!")); resp.StatusCode != 400 {
		t.Fatalf("invalid device want 400 got %d", resp.StatusCode)
	}
}

func TestCartIsScopedPerDevice(t *testing.T) {
	r := setupRouterTest(t, nil, nil)

	resp := call(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1,"quantity":2,"variant":{"颜色":"黑色钛金属"}}`, device("device-a"))
	if resp.StatusCode != 0 {
		t.Fatalf("add to cart failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var added struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
		Cart struct {
			ItemCount int    `json:"item_count"`
			Total     string `json:"total"`
		} `json:"cart"`
	}
	decodeData(t, resp, &added)
	if added.Cart.ItemCount != 2 || added.Cart.Total != "19998.00" {
		t.Fatalf("unexpected cart summary %+v", added.Cart)
	}

	resp = call(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":4,"quantity":1}`, device("device-a"))
	if resp.StatusCode != 400 {
		t.Fatalf("out of stock want 400 got %d", resp.StatusCode)
	}

	var summary struct {
		ItemCount     int  `json:"item_count"`
		SelectedCount int  `json:"selected_count"`
		IsAllSelected bool `json:"is_all_selected"`
	}
	decodeData(t, call(t, r, http.MethodGet, "/api/v1/cart", "", device("device-b")), &summary)
	if summary.ItemCount != 0 {
		t.Fatalf("device-b should have an empty cart, got %d", summary.ItemCount)
	}

	decodeData(t, call(t, r, http.MethodPut, "/api/v1/cart/items/"+added.Item.ID, `{"quantity":5}`, device("device-a")), &summary)
	if summary.ItemCount != 5 {
		t.Fatalf("quantity update want 5 got %d", summary.ItemCount)
	}
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/cart/items/"+added.Item.ID+"/toggle", "", device("device-a")), &summary)
	if summary.SelectedCount != 0 || summary.IsAllSelected {
		t.Fatalf("toggle should unselect the line: %+v", summary)
	}
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/cart/toggle-all", "", device("device-a")), &summary)
	if !summary.IsAllSelected {
		t.Fatalf("toggle-all should select every line: %+v", summary)
	}
	decodeData(t, call(t, r, http.MethodPut, "/api/v1/cart/items/"+added.Item.ID, `{"quantity":0}`, device("device-a")), &summary)
	if summary.ItemCount != 0 {
		t.Fatalf("quantity 0 should remove the line, got %d", summary.ItemCount)
	}
}

func TestWishlistAndHistoryRoutes(t *testing.T) {
	r := setupRouterTest(t, nil, nil)
	headers := device("device-w")

	var toggled struct {
		InWishlist bool `json:"in_wishlist"`
		Count      int  `json:"count"`
	}
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/wishlist/2/toggle", "", headers), &toggled)
	if !toggled.InWishlist || toggled.Count != 1 {
		t.Fatalf("toggle should add: %+v", toggled)
	}
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/wishlist", `{"product_id":2}`, headers), &toggled)
	if toggled.Count != 1 {
		t.Fatalf("add should be idempotent: %+v", toggled)
	}
	decodeData(t, call(t, r, http.MethodDelete, "/api/v1/wishlist/2", "", headers), &toggled)
	if toggled.InWishlist || toggled.Count != 0 {
		t.Fatalf("remove failed: %+v", toggled)
	}
	if resp := call(t, r, http.MethodPost, "/api/v1/wishlist/abc/toggle", "", headers); resp.StatusCode != 400 {
		t.Fatalf("bad product id want 400 got %d", resp.StatusCode)
	}

	var history []string
	call(t, r, http.MethodPost, "/api/v1/search/history", `{"query":"咖啡"}`, headers)
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/search/history", `{"query":"背包"}`, headers), &history)
	if len(history) != 2 || history[0] != "背包" {
		t.Fatalf("history want [背包 咖啡] got %v", history)
	}

	var snapshot struct {
		Revision uint64 `json:"revision"`
		Result   struct {
			Total int `json:"total"`
		} `json:"result"`
	}
	decodeData(t, call(t, r, http.MethodPut, "/api/v1/search/session", `{"query":"apple","submit":true}`, headers), &snapshot)
	if snapshot.Revision == 0 || snapshot.Result.Total != 3 {
		t.Fatalf("submitted search want 3 results got %+v", snapshot)
	}
	decodeData(t, call(t, r, http.MethodGet, "/api/v1/search/history", "", headers), &history)
	if len(history) != 3 || history[0] != "apple" {
		t.Fatalf("submitted query should lead history, got %v", history)
	}
	call(t, r, http.MethodDelete, "/api/v1/search/history", "", headers)
	decodeData(t, call(t, r, http.MethodGet, "/api/v1/search/history", "", headers), &history)
	if len(history) != 0 {
		t.Fatalf("history should be cleared, got %v", history)
	}
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	resp := call(t, r, http.MethodPost, "/api/v1/auth/login", `{"email":"user@example.com","password":"password123"}`, nil)
	var session struct {
		Token string `json:"token"`
	}
	decodeData(t, resp, &session)
	if resp.StatusCode != 0 || session.Token == "" {
		t.Fatalf("login failed: %d %s", resp.StatusCode, resp.Msg)
	}
	return session.Token
}

func TestAuthRoutes(t *testing.T) {
	r := setupRouterTest(t, nil, nil)

	if resp := call(t, r, http.MethodGet, "/api/v1/me", "", nil); resp.StatusCode != 401 {
		t.Fatalf("guest /me want 401 got %d", resp.StatusCode)
	}
	if resp := call(t, r, http.MethodPost, "/api/v1/auth/login", `{"email":"user@example.com","password":"wrong"}`, nil); resp.StatusCode != 401 {
		t.Fatalf("bad password want 401 got %d", resp.StatusCode)
	}
	token := login(t, r)
	resp := call(t, r, http.MethodGet, "/api/v1/me", "", map[string]string{"Authorization": "Bearer " + token})
	if resp.StatusCode != 0 || !strings.Contains(string(resp.Data), `"email":"user@example.com"`) {
		t.Fatalf("unexpected /me response: %d %s", resp.StatusCode, string(resp.Data))
	}
	if resp := call(t, r, http.MethodGet, "/api/v1/me", "", map[string]string{"Authorization": "Bearer nope"}); resp.StatusCode != 401 {
		t.Fatalf("invalid token want 401 got %d", resp.StatusCode)
	}

	resp = call(t, r, http.MethodPost, "/api/v1/auth/register", `{"email":"new@example.com","password":"secret1","name":"新用户"}`, nil)
	if resp.StatusCode != 0 || !strings.Contains(string(resp.Data), `"token"`) {
		t.Fatalf("register failed: %d %s", resp.StatusCode, resp.Msg)
	}
	if resp := call(t, r, http.MethodPost, "/api/v1/auth/register", `{"email":"NEW@example.com","password":"secret1","name":"x"}`, nil); resp.StatusCode != 400 {
		t.Fatalf("duplicate email want 400 got %d", resp.StatusCode)
	}
}

func TestCheckoutFlow(t *testing.T) {
	r := setupRouterTest(t, nil, nil)
	headers := device("device-c")

	call(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1,"quantity":1}`, headers)
	call(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":7,"quantity":1}`, headers)
	var summary struct {
		Items []struct {
			ID        string `json:"id"`
			ProductID uint   `json:"product_id"`
		} `json:"items"`
	}
	decodeData(t, call(t, r, http.MethodGet, "/api/v1/cart", "", headers), &summary)
	for _, item := range summary.Items {
		if item.ProductID == 7 {
			call(t, r, http.MethodPost, "/api/v1/cart/items/"+item.ID+"/toggle", "", headers)
		}
	}

	var preview struct {
		Summary struct {
			Subtotal string `json:"subtotal"`
			Discount string `json:"discount"`
			Total    string `json:"total"`
		} `json:"summary"`
	}
	resp := call(t, r, http.MethodPost, "/api/v1/checkout/preview", `{"shipping_method_id":"express","coupon_code":"SAVE20"}`, headers)
	decodeData(t, resp, &preview)
	if preview.Summary.Subtotal != "9999.00" || preview.Summary.Discount != "20.00" || preview.Summary.Total != "9994.00" {
		t.Fatalf("unexpected preview %+v", preview.Summary)
	}
	if resp := call(t, r, http.MethodPost, "/api/v1/checkout/preview", `{"coupon_code":"NOPE"}`, headers); resp.StatusCode != 400 {
		t.Fatalf("unknown coupon want 400 got %d", resp.StatusCode)
	}

	submitBody := `{"shipping_method_id":"express","coupon_code":"SAVE20","address":{"name":"张三","phone":"13800000000","province":"北京市","city":"北京市","district":"朝阳区","street":"建国路 1 号"}}`
	if resp := call(t, r, http.MethodPost, "/api/v1/checkout/submit", submitBody, headers); resp.StatusCode != 401 {
		t.Fatalf("guest submit want 401 got %d", resp.StatusCode)
	}

	authed := map[string]string{
		constants.DeviceIDHeader: "device-c",
		"Authorization":          "Bearer " + login(t, r),
	}
	if resp := call(t, r, http.MethodPost, "/api/v1/checkout/submit", `{"shipping_method_id":"express"}`, authed); resp.StatusCode != 400 {
		t.Fatalf("missing address want 400 got %d", resp.StatusCode)
	}
	resp = call(t, r, http.MethodPost, "/api/v1/checkout/submit", submitBody, authed)
	if resp.StatusCode != 0 {
		t.Fatalf("submit failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var submitted struct {
		Order struct {
			OrderNo string `json:"order_no"`
			Total   string `json:"total"`
		} `json:"order"`
		Cart struct {
			Items []struct {
				ProductID uint `json:"product_id"`
			} `json:"items"`
		} `json:"cart"`
	}
	decodeData(t, resp, &submitted)
	if submitted.Order.Total != "9994.00" || submitted.Order.OrderNo == "" {
		t.Fatalf("unexpected receipt %+v", submitted.Order)
	}
	if len(submitted.Cart.Items) != 1 || submitted.Cart.Items[0].ProductID != 7 {
		t.Fatalf("only the unselected line should remain, got %+v", submitted.Cart.Items)
	}

	resp = call(t, r, http.MethodGet, "/api/v1/orders", "", authed)
	if resp.StatusCode != 0 || resp.Pagination.Total != 1 {
		t.Fatalf("orders want total 1 got %d (%d)", resp.Pagination.Total, resp.StatusCode)
	}
	resp = call(t, r, http.MethodGet, "/api/v1/orders/"+submitted.Order.OrderNo, "", authed)
	if resp.StatusCode != 0 {
		t.Fatalf("order detail failed: %d", resp.StatusCode)
	}
	if resp := call(t, r, http.MethodGet, "/api/v1/orders/ES000", "", authed); resp.StatusCode != 404 {
		t.Fatalf("unknown order want 404 got %d", resp.StatusCode)
	}
}

func TestAddressRoutes(t *testing.T) {
	r := setupRouterTest(t, nil, nil)
	headers := device("device-addr")

	if resp := call(t, r, http.MethodPost, "/api/v1/addresses", `{"name":"张三"}`, headers); resp.StatusCode != 400 {
		t.Fatalf("incomplete address want 400 got %d", resp.StatusCode)
	}
	var first, second models.Address
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/addresses", `{"name":"张三","phone":"1","province":"p","city":"c","district":"d","street":"s"}`, headers), &first)
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/addresses", `{"name":"李四","phone":"2","province":"p","city":"c","district":"d","street":"s"}`, headers), &second)
	if !first.IsDefault || second.IsDefault {
		t.Fatalf("first address should be default: %+v %+v", first, second)
	}

	var def models.Address
	decodeData(t, call(t, r, http.MethodPost, "/api/v1/addresses/"+second.ID+"/default", "", headers), &def)
	if def.ID != second.ID {
		t.Fatalf("default want %s got %s", second.ID, def.ID)
	}
	if resp := call(t, r, http.MethodDelete, "/api/v1/addresses/missing", "", headers); resp.StatusCode != 404 {
		t.Fatalf("unknown address want 404 got %d", resp.StatusCode)
	}
	call(t, r, http.MethodDelete, "/api/v1/addresses/"+second.ID, "", headers)
	var book struct {
		Items   []models.Address `json:"items"`
		Default *models.Address  `json:"default"`
	}
	decodeData(t, call(t, r, http.MethodGet, "/api/v1/addresses", "", headers), &book)
	if len(book.Items) != 1 || book.Default == nil || book.Default.ID != first.ID {
		t.Fatalf("removing default should promote remaining address: %+v", book)
	}
}

func TestLoginRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := setupRouterTest(t, client, func(cfg *config.Config) {
		cfg.Security.LoginRateLimit = config.RateLimitConfig{WindowSeconds: 60, MaxAttempts: 2}
	})
	body := `{"email":"user@example.com","password":"wrong"}`
	for i := 0; i < 2; i++ {
		if resp := call(t, r, http.MethodPost, "/api/v1/auth/login", body, nil); resp.StatusCode != 401 {
			t.Fatalf("attempt %d want 401 got %d", i+1, resp.StatusCode)
		}
	}
	if resp := call(t, r, http.MethodPost, "/api/v1/auth/login", body, nil); resp.StatusCode != 429 {
		t.Fatalf("third attempt want 429 got %d", resp.StatusCode)
	}
}
