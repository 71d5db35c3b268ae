package settlement

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderID returns BRO, the unix milliseconds of now and 16 random
// uppercase hex characters.
func NewOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return OrderIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + suffix[len(suffix)-16:]
}
