package service

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// newSessionID groups chat turns when the caller did not supply a session:
// arrival timestamp plus a short random suffix.
func newSessionID() string {
	bytes := make([]byte, 4)
	_, _ = rand.Read(bytes)
	return "s" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + hex.EncodeToString(bytes)
}
