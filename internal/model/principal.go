package model

import "github.com/google/uuid"

// Principal is the authenticated caller. Every query the engine runs is
// scoped to this user; cross-user access is structurally impossible.
type Principal struct {
	UserID uuid.UUID
	Role   string
}
