package app

import (
	"context"
	"errors"
	"time"

	"github.com/estore-next/internal/logger"
)

const defaultSweepInterval = time.Minute

// IdleEvictor 可按空闲时长释放内存状态
type IdleEvictor interface {
	EvictIdle(idle time.Duration) int
	Len() int
}

// DeviceSweeper 定期释放长时间未访问的设备状态
type DeviceSweeper struct {
	name     string
	devices  IdleEvictor
	idle     time.Duration
	interval time.Duration
	stopCh   chan struct{}
}

// NewDeviceSweeper 创建设备状态清理服务；idle<=0 时返回 nil
func NewDeviceSweeper(devices IdleEvictor, idle, interval time.Duration) *DeviceSweeper {
	if devices == nil || idle <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = defaultSweepInterval
		if idle < interval {
			interval = idle
		}
	}
	return &DeviceSweeper{
		name:     "device_sweeper",
		devices:  devices,
		idle:     idle,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Name 服务名称
func (s *DeviceSweeper) Name() string {
	if s == nil || s.name == "" {
		return "device_sweeper"
	}
	return s.name
}

// Start 阻塞运行清理循环，直到 ctx 结束或 Stop
func (s *DeviceSweeper) Start(ctx context.Context) error {
	if s == nil || s.devices == nil {
		return errors.New("device sweeper not initialized")
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce 执行一次清理
func (s *DeviceSweeper) SweepOnce() int {
	evicted := s.devices.EvictIdle(s.idle)
	if evicted > 0 {
		logger.Debugw("device_sweeper_evicted",
			"evicted", evicted,
			"remaining", s.devices.Len(),
		)
	}
	return evicted
}

// Stop 停止服务
func (s *DeviceSweeper) Stop(ctx context.Context) error {
	if s == nil || s.stopCh == nil {
		return nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	return nil
}
