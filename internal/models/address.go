package models

import "strings"

// Address 收货地址（设备本地地址簿）
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
	District  string `json:"district"`
	Street    string `json:"street"`
	ZipCode   string `json:"zip_code"`
	IsDefault bool   `json:"is_default"`
}

// MissingFields 返回缺失的必填字段名
func (a *Address) MissingFields() []string {
	if a == nil {
		return []string{"name", "phone", "province", "city", "district", "street"}
	}
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"province", a.Province},
		{"city", a.City},
		{"district", a.District},
		{"street", a.Street},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
