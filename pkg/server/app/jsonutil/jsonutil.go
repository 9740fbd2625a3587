package jsonutil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeResponseBody attempts to decode the HTTP response body into the
// given destination argument. It returns an error if the internal decoding
// operation fails; otherwise, it returns nil, indicating successful
// processing.
func DecodeResponseBody(res *http.Response, dst any) error {
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decoding http response body op failure: %w", err)
	}
	return nil
}
