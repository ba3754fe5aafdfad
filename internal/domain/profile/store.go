package profile

import (
	"context"
	"fmt"
)

// StorageKey is the fixed key the profile blob lives under inside a session.
const StorageKey = "skillsyncData"

// Store persists the encoded profile of one session. Load returns nil data
// and a nil error when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context, sessionKey string) ([]byte, error)
	Save(ctx context.Context, sessionKey string, data []byte) error
}

// SessionKey namespaces StorageKey by session id.
func SessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", StorageKey, sessionID)
}
