package models

import (
	"github.com/estore-next/internal/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCatalog 空库时写入演示商品、优惠券与配送方式；overwrite 为 true 时按主键覆盖
func SeedCatalog(db *gorm.DB, overwrite bool) error {
	if db == nil {
		db = DB
	}
	if !overwrite {
		var count int64
		if err := db.Model(&Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			logger.Debugw("seed_catalog_skip_not_empty", "products", count)
			return nil
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		products := DemoProducts()
		if err := upsert.Create(&products).Error; err != nil {
			return err
		}
		coupons := DemoCoupons()
		if err := upsert.Create(&coupons).Error; err != nil {
			return err
		}
		methods := DemoShippingMethods()
		if err := upsert.Create(&methods).Error; err != nil {
			return err
		}
		logger.Infow("seed_catalog_done",
			"products", len(products),
			"coupons", len(coupons),
			"shipping_methods", len(methods),
		)
		return nil
	})
}
