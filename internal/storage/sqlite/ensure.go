package sqlite

import (
	"github.com/felixgeelhaar/codelearn/internal/profile"
	"github.com/felixgeelhaar/codelearn/internal/session"
)

// Ensure SQLite stores implement the storage interfaces.
var (
	_ session.SessionStore  = (*SessionStore)(nil)
	_ profile.ActivityStore = (*ActivityStore)(nil)
)
