package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/queue"
	"github.com/estore-next/internal/repository"

	"gorm.io/gorm"
)

// OrderRequest 提交订单所需的全部信息
type OrderRequest struct {
	UserID         string
	DeviceID       string
	Items          []models.CartLineItem
	Address        models.Address
	ShippingMethod models.ShippingMethod
	Coupon         *models.Coupon
	Summary        PriceSummary
}

// OrderReceipt 提交成功的回执
type OrderReceipt struct {
	OrderID   uint         `json:"order_id"`
	OrderNo   string       `json:"order_no"`
	Status    string       `json:"status"`
	Currency  string       `json:"currency"`
	Total     models.Money `json:"total"`
	CreatedAt time.Time    `json:"created_at"`
}

// OrderSubmitter 订单提交协作者
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (*OrderReceipt, error)
}

// OrderServiceOptions 订单服务参数
type OrderServiceOptions struct {
	Currency    string
	SubmitDelay time.Duration
}

// OrderService 订单服务：落库并投递确认任务
type OrderService struct {
	db          *gorm.DB
	repo        repository.OrderRepository
	queueClient *queue.Client
	currency    string
	submitDelay time.Duration
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, repo repository.OrderRepository, queueClient *queue.Client, opts OrderServiceOptions) *OrderService {
	currency := strings.ToUpper(strings.TrimSpace(opts.Currency))
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	return &OrderService{
		db:          db,
		repo:        repo,
		queueClient: queueClient,
		currency:    currency,
		submitDelay: opts.SubmitDelay,
		now:         time.Now,
	}
}

// SubmitOrder 创建订单；队列启用时投递 order:placed 任务由 worker 确认
func (s *OrderService) SubmitOrder(ctx context.Context, req OrderRequest) (*OrderReceipt, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUnauthorized
	}
	if len(req.Items) == 0 {
		return nil, ErrNoSelectedItems
	}
	if s.submitDelay > 0 {
		timer := time.NewTimer(s.submitDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNo:          generateOrderNo(),
		UserID:           req.UserID,
		DeviceID:         req.DeviceID,
		Status:           constants.OrderStatusPending,
		Currency:         s.currency,
		Subtotal:         req.Summary.Subtotal,
		ShippingCost:     req.Summary.ShippingCost,
		Discount:         req.Summary.Discount,
		Total:            req.Summary.Total,
		ShippingMethodID: req.ShippingMethod.ID,
		AddressJSON:      models.AddressJSON(req.Address),
	}
	if req.Coupon != nil {
		order.CouponCode = req.Coupon.Code
	}
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
			Variant:   line.Variant,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	if s.queueClient != nil && s.queueClient.Enabled() {
		payload := queue.OrderPlacedPayload{OrderID: order.ID, OrderNo: order.OrderNo, DeviceID: order.DeviceID}
		if err := s.queueClient.EnqueueOrderPlaced(payload); err != nil {
			logger.Warnw("order_enqueue_placed_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
		}
	}
	logger.Infow("order_submitted",
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"device_id", order.DeviceID,
		"items", len(items),
		"total", order.Total.String(),
	)

	return &OrderReceipt{
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		Status:    order.Status,
		Currency:  order.Currency,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}, nil
}

// ConfirmOrder 将待确认订单标记为已确认，重复确认视为成功
func (s *OrderService) ConfirmOrder(orderID uint) error {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	switch order.Status {
	case constants.OrderStatusConfirmed:
		return nil
	case constants.OrderStatusPending:
	default:
		return ErrOrderStatusInvalid
	}
	now := s.now()
	if err := s.repo.UpdateStatus(order.ID, constants.OrderStatusConfirmed, map[string]interface{}{
		"confirmed_at": now,
		"updated_at":   now,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrOrderConfirmFailed, err)
	}
	return nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID string, page, pageSize int) ([]models.Order, int64, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, 0, ErrUnauthorized
	}
	return s.repo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetByOrderNo 获取用户名下订单
func (s *OrderService) GetByOrderNo(userID, orderNo string) (*models.Order, error) {
	order, err := s.repo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.OrderNoPrefix, now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
