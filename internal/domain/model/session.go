package model

import "time"

// Session is a server-side admin session. The token is an opaque capability
// carried by the client in a cookie; destroying the row ends the session.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
}
