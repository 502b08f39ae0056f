package models

import "time"

func seedDate(raw string) time.Time {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		panic(err)
	}
	return t
}

func moneyPtr(raw string) *Money {
	m := MustMoney(raw)
	return &m
}

// DemoProducts 演示商品目录
func DemoProducts() []Product {
	return []Product{
		{
			ID:            1,
			Name:          "iPhone 15 Pro Max",
			Description:   "最新款iPhone，配备钛金属外壳",
			Price:         MustMoney("9999"),
			OriginalPrice: moneyPtr("10999"),
			Images:        StringArray{"/placeholder-product.jpg"},
			Category:      "手机数码",
			CategoryID:    1,
			Brand:         "Apple",
			Rating:        4.8,
			Reviews:       256,
			Stock:         50,
			Sales:         1280,
			Badge:         "热销",
			Specifications: Specifications{
				{Name: "颜色", Value: "原色钛金属", Options: []string{"原色钛金属", "黑色钛金属", "白色钛金属"}},
				{Name: "存储容量", Value: "256GB", Options: []string{"256GB", "512GB", "1TB"}},
			},
			Features:  StringArray{"A17 Pro 芯片", "钛金属设计"},
			Tags:      StringArray{"iPhone", "手机", "Apple"},
			SortOrder: 1,
			CreatedAt: seedDate("2024-01-01"),
			UpdatedAt: seedDate("2024-01-01"),
		},
		{
			ID:            2,
			Name:          "MacBook Air M3",
			Description:   "超薄轻便的笔记本电脑",
			Price:         MustMoney("8999"),
			OriginalPrice: moneyPtr("9999"),
			Images:        StringArray{"/placeholder-product.jpg"},
			Category:      "电脑办公",
			CategoryID:    2,
			Brand:         "Apple",
			Rating:        4.9,
			Reviews:       189,
			Stock:         30,
			Sales:         890,
			Specifications: Specifications{
				{Name: "颜色", Value: "午夜色", Options: []string{"午夜色", "星光色", "深空灰色"}},
			},
			Features:  StringArray{"M3 芯片", "18 小时续航"},
			Tags:      StringArray{"MacBook", "笔记本电脑", "Apple"},
			SortOrder: 2,
			CreatedAt: seedDate("2024-02-15"),
			UpdatedAt: seedDate("2024-02-15"),
		},
		{
			ID:            3,
			Name:          "AirPods Pro 3",
			Description:   "主动降噪无线耳机",
			Price:         MustMoney("1999"),
			OriginalPrice: moneyPtr("2299"),
			Images:        StringArray{"/placeholder-product.jpg"},
			Category:      "数码配件",
			CategoryID:    3,
			Brand:         "Apple",
			Rating:        4.7,
			Reviews:       445,
			Stock:         100,
			Sales:         2100,
			Badge:         "新品",
			Features:      StringArray{"主动降噪", "空间音频"},
			Tags:          StringArray{"AirPods", "耳机", "Apple"},
			SortOrder:     3,
			CreatedAt:     seedDate("2024-03-20"),
			UpdatedAt:     seedDate("2024-03-20"),
		},
		{
			ID:          4,
			Name:        "Galaxy S24 Ultra",
			Description: "旗舰影像手机",
			Price:       MustMoney("8999"),
			Images:      StringArray{"/placeholder-product.jpg"},
			Category:    "手机数码",
			CategoryID:  1,
			Brand:       "Samsung",
			Rating:      4.6,
			Reviews:     132,
			Stock:       0,
			Sales:       640,
			Specifications: Specifications{
				{Name: "颜色", Value: "钛黑", Options: []string{"钛黑", "钛灰"}},
			},
			Tags:      StringArray{"手机", "Samsung", "Galaxy"},
			SortOrder: 4,
			CreatedAt: seedDate("2024-01-25"),
			UpdatedAt: seedDate("2024-01-25"),
		},
		{
			ID:          5,
			Name:        "Air Zoom 运动鞋",
			Description: "轻量缓震跑步鞋",
			Price:       MustMoney("699"),
			Images:      StringArray{"/placeholder-product.jpg"},
			Category:    "运动户外",
			CategoryID:  4,
			Brand:       "Nike",
			Rating:      4.5,
			Reviews:     980,
			Stock:       200,
			Sales:       5400,
			Specifications: Specifications{
				{Name: "尺码", Value: "42", Options: []string{"40", "41", "42", "43", "44"}},
				{Name: "颜色", Value: "黑色", Options: []string{"黑色", "白色"}},
			},
			Tags:      StringArray{"运动鞋", "跑步", "Nike"},
			SortOrder: 5,
			CreatedAt: seedDate("2024-04-02"),
			UpdatedAt: seedDate("2024-04-02"),
		},
		{
			ID:          6,
			Name:        "WH-1000XM5 无线耳机",
			Description: "头戴式降噪耳机",
			Price:       MustMoney("2499"),
			Images:      StringArray{"/placeholder-product.jpg"},
			Category:    "数码配件",
			CategoryID:  3,
			Brand:       "Sony",
			Rating:      4.8,
			Reviews:     312,
			Stock:       45,
			Sales:       1500,
			Tags:        StringArray{"无线耳机", "降噪", "Sony"},
			SortOrder:   6,
			CreatedAt:   seedDate("2024-02-01"),
			UpdatedAt:   seedDate("2024-02-01"),
		},
		{
			ID:          7,
			Name:        "挂耳咖啡礼盒",
			Description: "精选阿拉比卡咖啡豆",
			Price:       MustMoney("99"),
			Images:      StringArray{"/placeholder-product.jpg"},
			Category:    "食品饮料",
			CategoryID:  5,
			Brand:       "三顿半",
			Rating:      4.4,
			Reviews:     2100,
			Stock:       500,
			Sales:       12000,
			Tags:        StringArray{"咖啡", "礼盒"},
			SortOrder:   7,
			CreatedAt:   seedDate("2024-05-10"),
			UpdatedAt:   seedDate("2024-05-10"),
		},
		{
			ID:          8,
			Name:        "城市通勤双肩背包",
			Description: "防泼水大容量背包",
			Price:       MustMoney("199"),
			Images:      StringArray{"/placeholder-product.jpg"},
			Category:    "箱包",
			CategoryID:  6,
			Brand:       "小米",
			Rating:      4.3,
			Reviews:     760,
			Stock:       80,
			Sales:       3100,
			Specifications: Specifications{
				{Name: "颜色", Value: "深灰", Options: []string{"深灰", "藏青"}},
			},
			Tags:      StringArray{"背包", "通勤"},
			SortOrder: 8,
			CreatedAt: seedDate("2024-03-01"),
			UpdatedAt: seedDate("2024-03-01"),
		},
	}
}

// DemoCoupons 演示优惠券目录
func DemoCoupons() []Coupon {
	expires := seedDate("2030-12-31")
	return []Coupon{
		{ID: "NEW10", Code: "NEW10", Name: "新用户专享", Description: "新用户首单立减10元", Type: "fixed", Value: MustMoney("10"), MinOrder: MustMoney("50"), ExpiresAt: &expires, IsActive: true, SortOrder: 1},
		{ID: "SAVE20", Code: "SAVE20", Name: "满200减20", Description: "单笔订单满200元立减20元", Type: "fixed", Value: MustMoney("20"), MinOrder: MustMoney("200"), ExpiresAt: &expires, IsActive: true, SortOrder: 2},
		{ID: "PERCENT15", Code: "PERCENT15", Name: "全场8.5折", Description: "全场商品享受8.5折优惠", Type: "percentage", Value: MustMoney("15"), MinOrder: MustMoney("100"), MaxDiscount: moneyPtr("50"), ExpiresAt: &expires, IsActive: true, SortOrder: 3},
		{ID: "VIP30", Code: "VIP30", Name: "VIP专享", Description: "VIP会员专享满300减30", Type: "fixed", Value: MustMoney("30"), MinOrder: MustMoney("300"), ExpiresAt: &expires, IsActive: true, SortOrder: 4},
	}
}

// DemoShippingMethods 演示配送方式目录
func DemoShippingMethods() []ShippingMethod {
	return []ShippingMethod{
		{ID: "standard", Name: "标准快递", Description: "全国包邮", Price: MustMoney("0"), EstimatedDays: "3-5个工作日", Icon: "truck", SortOrder: 1},
		{ID: "express", Name: "极速配送", Description: "优先发货", Price: MustMoney("15"), EstimatedDays: "1-2个工作日", Icon: "zap", SortOrder: 2},
		{ID: "next-day", Name: "次日达", Description: "次日送达", Price: MustMoney("20"), EstimatedDays: "次日送达", Icon: "plane", SortOrder: 3},
		{ID: "same-day", Name: "当日达", Description: "限指定城市", Price: MustMoney("25"), EstimatedDays: "当日送达", Icon: "clock", SortOrder: 4},
	}
}
