// internal/app/features/submit/id.go
package submit

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	idPrefix  = "REC"
	idRandLen = 5
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewResourceID mints a catalog ID for a fresh submission: the current
// millisecond timestamp plus a short random suffix, both base36 and
// uppercased. Seed records keep their hand-assigned IDs; this format
// only appears on submitted resources.
func NewResourceID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := make([]byte, idRandLen)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return strings.ToUpper(fmt.Sprintf("%s-%s-%s", idPrefix, ts, suffix))
}
