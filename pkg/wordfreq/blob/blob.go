// Package blob stores raw uploaded document bytes by key.
package blob

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrNotFound is returned when no blob exists for a key.
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidKey is returned for keys that are empty or escape the store root.
	ErrInvalidKey = errors.New("invalid blob key")
)

// Store holds raw document bytes.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a unique storage key of the form user_<id>/<ulid>.<ext>,
// keeping the ASCII letters and digits of the uploaded file's extension.
func NewKey(userID int64, filename string) string {
	id := ulid.Make().String()
	return fmt.Sprintf("user_%d/%s%s", userID, id, keyExt(filename))
}

// keyExt returns the sanitized, lower-cased extension of filename with its
// leading dot, or "" when nothing usable remains.
func keyExt(filename string) string {
	ext := path.Ext(strings.ReplaceAll(filename, `\`, "/"))
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimPrefix(ext, ".")) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "." + b.String()
}

// cleanKey normalises a key to a relative slash path and rejects escapes.
func cleanKey(key string) (string, error) {
	k := path.Clean(strings.ReplaceAll(key, `\`, "/"))
	if k == "." || k == "" || k == "/" {
		return "", ErrInvalidKey
	}
	if strings.HasPrefix(k, "/") || k == ".." || strings.HasPrefix(k, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.Contains(k, ":") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return k, nil
}
