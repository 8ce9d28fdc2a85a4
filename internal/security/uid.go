package security

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// EncodeUID renders a user id the way verification links carry it:
// unpadded URL-safe base64 of the decimal id.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID. Padded input is accepted too.
func DecodeUID(encoded string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(encoded)
		if err != nil {
			return 0, fmt.Errorf("decode uid: %w", err)
		}
	}

	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid uid %q", encoded)
	}
	return uint(id), nil
}
