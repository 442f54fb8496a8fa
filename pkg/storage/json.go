package storage

import (
	"encoding/json"
	"fmt"
)

// PutJSON stores v JSON-encoded under key.
func PutJSON(b Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.Put(key, data)
}

// GetJSON decodes the value under key into v. It reports false if the key
// is absent.
func GetJSON(b Bucket, key []byte, v any) (bool, error) {
	data := b.Get(key)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
