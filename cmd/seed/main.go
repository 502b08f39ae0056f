package main

import (
	"flag"

	"github.com/estore-next/internal/config"
	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/models"
)

func main() {
	overwrite := flag.Bool("overwrite", false, "按主键覆盖已有的演示商品、优惠券与配送方式")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(nil); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedCatalog(nil, *overwrite); err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}

	var products, coupons, methods int64
	models.DB.Model(&models.Product{}).Count(&products)
	models.DB.Model(&models.Coupon{}).Count(&coupons)
	models.DB.Model(&models.ShippingMethod{}).Count(&methods)
	stdLog.Printf("Seed completed: %d products, %d coupons, %d shipping methods", products, coupons, methods)
}
