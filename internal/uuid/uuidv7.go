package uuid

import (
	"io"

	googleuuid "github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 string. UUIDv7 sorts by creation time,
// which keeps primary keys roughly insertion ordered.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// NewFromReader returns a random (v4) UUID drawn from r. Generators that need
// reproducible identifiers pass a seeded stream.
func NewFromReader(r io.Reader) string {
	id, err := googleuuid.NewRandomFromReader(r)
	if err != nil {
		return New()
	}
	return id.String()
}

// Parse validates and normalizes a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
