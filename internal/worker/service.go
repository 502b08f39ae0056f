package worker

import (
	"context"
	"errors"

	"github.com/estore-next/internal/config"
	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 订单事件消费服务，生命周期由 app.Runner 管理
type Service struct {
	name        string
	server      *asynq.Server
	mux         *asynq.ServeMux
	consumer    *Consumer
	concurrency int
	queues      map[string]int
}

// NewService 创建消费服务；队列未启用时返回错误
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:        "worker",
		server:      asynq.NewServer(opt, serverCfg),
		mux:         mux,
		consumer:    consumer,
		concurrency: serverCfg.Concurrency,
		queues:      serverCfg.Queues,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动消费并阻塞到 ctx 结束；信号由 Runner 统一处理
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	logger.Infow("worker_started",
		"concurrency", s.concurrency,
		"queues", s.queues,
	)
	<-ctx.Done()
	return nil
}

// Stop 等待处理中的任务结束后退出
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	logger.Infow("worker_stopped")
	return nil
}
