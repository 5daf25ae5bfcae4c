package models

import (
	"database/sql/driver"
	"encoding/json"
)

// StringArray 字符串数组类型，以 JSON 文本存储（图片列表等）
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StringArray{}
		return nil
	case []byte:
		if len(v) == 0 {
			*s = StringArray{}
			return nil
		}
		return json.Unmarshal(v, s)
	case string:
		if v == "" {
			*s = StringArray{}
			return nil
		}
		return json.Unmarshal([]byte(v), s)
	default:
		*s = StringArray{}
		return nil
	}
}
