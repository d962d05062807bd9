package domain

import "time"

// Session is the server-held record of an authenticated caller: a snapshot
// of the user at login time, keyed by the token's ID. Written only at login,
// deleted at logout.
type Session struct {
	User     User      `json:"user"`
	IssuedAt time.Time `json:"issued_at"`
}
