package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// newID generates a uuid for models created through drivers without a
// server-side default (the sqlite test databases).
func newID() string {
	return uuid.New().String()
}

func jsonValue(v any) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	return string(data), nil
}

func jsonScan(src, dst any) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into json column", src)
	}
}

// StringList stores a []string as a JSON text column so the same model works
// against Postgres and the in-memory sqlite used in tests.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonValue([]string(l))
}

func (l *StringList) Scan(src interface{}) error {
	return jsonScan(src, (*[]string)(l))
}

// Context is the free-form payload carried by notifications.
type Context map[string]interface{}

func (c Context) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return jsonValue(map[string]interface{}(c))
}

func (c *Context) Scan(src interface{}) error {
	return jsonScan(src, (*map[string]interface{})(c))
}
