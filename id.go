package tracker

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	idMu   sync.Mutex
	lastID string
)

// NewID returns a new record identifier: the current time in milliseconds
// followed by a random suffix, both in base 36.
//
// Identifiers are unique with high probability only. Two consecutive calls
// never return the same value.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	for {
		id := strconv.FormatInt(time.Now().UnixMilli(), 36) + randomSuffix()
		if id != lastID {
			lastID = id
			return id
		}
	}
}

// randomSuffix returns 5 base 36 characters drawn from a random UUID.
func randomSuffix() string {
	u := uuid.New()
	var b strings.Builder
	for _, c := range u[:5] {
		b.WriteByte("0123456789abcdefghijklmnopqrstuvwxyz"[int(c)%36])
	}
	return b.String()
}
