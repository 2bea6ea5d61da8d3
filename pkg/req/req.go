package req

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxBodySize ограничение тела запроса
const maxBodySize = 1 << 20

// Decode читает JSON из тела запроса, отвергая неизвестные поля
func Decode[T any](body io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode request: %w", err)
	}
	return v, nil
}
