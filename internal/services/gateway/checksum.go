package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Sign returns the hex HMAC-SHA256 of fields under key.
func Sign(fields map[string]string, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(canonical(fields)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether checksum signs fields under key.
func VerifySignature(fields map[string]string, key, checksum string) bool {
	got, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(checksum)))
	if err != nil || len(got) != sha256.Size {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(canonical(fields)))
	return hmac.Equal(got, mac.Sum(nil))
}

func canonical(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == FieldChecksum {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + fields[k]
	}
	return strings.Join(parts, "|")
}
