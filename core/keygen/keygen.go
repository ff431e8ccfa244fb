package keygen

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DatePartitionedUniqueKey returns {prefix}/{YYYY}/{MM}/{DD}/{epoch}-{uuid}.
// The timestamp is converted to UTC before formatting.
func DatePartitionedUniqueKey(prefix string, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%011d-%s",
		prefix, t.Year(), int(t.Month()), t.Day(), t.Unix(), uuid.NewString())
}
