package bill

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator supplies opaque ids for new participants and expenses.
type IDGenerator func() string

// ShortID returns 12 hex characters taken from a random UUID.
func ShortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
