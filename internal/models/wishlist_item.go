package models

import "time"

// WishlistItem 收藏项（设备本地保存）
type WishlistItem struct {
	ID      string    `json:"id"`
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}
