package client

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// As maps decoded response data onto T, matching fields by their json tags.
// Decoded scalars such as time.Time are assigned as is.
func As[T any](data any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(data); err != nil {
		return out, fmt.Errorf("failed to map response onto %T: %w", out, err)
	}
	return out, nil
}
