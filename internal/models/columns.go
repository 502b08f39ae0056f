package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 字符串数组列（JSON 存储），用于 images、tags、features
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	return scanJSON(value, s, func() { *s = StringArray{} })
}

// Variant 规格选择（属性名 → 选中值），例如 {"颜色": "黑色"}
type Variant map[string]string

// Equal 判断两个规格选择是否完全一致（nil 与空 map 视为相等）
func (v Variant) Equal(other Variant) bool {
	if len(v) != len(other) {
		return false
	}
	for key, value := range v {
		otherValue, ok := other[key]
		if !ok || otherValue != value {
			return false
		}
	}
	return true
}

// Clone 复制规格选择
func (v Variant) Clone() Variant {
	out := make(Variant, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Value 实现 driver.Valuer 接口
func (v Variant) Value() (driver.Value, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

// Scan 实现 sql.Scanner 接口
func (v *Variant) Scan(value interface{}) error {
	return scanJSON(value, v, func() { *v = Variant{} })
}

// ProductSpecification 商品规格项，Options 非空时为可选规格
type ProductSpecification struct {
	Name    string   `json:"name"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
}

// Specifications 规格列表列
type Specifications []ProductSpecification

// Value 实现 driver.Valuer 接口
func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// Scan 实现 sql.Scanner 接口
func (s *Specifications) Scan(value interface{}) error {
	return scanJSON(value, s, func() { *s = Specifications{} })
}

func scanJSON(value interface{}, dest interface{}, reset func()) error {
	switch v := value.(type) {
	case nil:
		reset()
		return nil
	case []byte:
		if len(v) == 0 {
			reset()
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			reset()
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}

// AddressJSON 地址快照列
type AddressJSON Address

// Value 实现 driver.Valuer 接口
func (a AddressJSON) Value() (driver.Value, error) {
	b, err := json.Marshal(Address(a))
	return string(b), err
}

// Scan 实现 sql.Scanner 接口
func (a *AddressJSON) Scan(value interface{}) error {
	return scanJSON(value, a, func() { *a = AddressJSON{} })
}
