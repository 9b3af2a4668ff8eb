package domain

// Owner identifies whose cart a request operates on. Authenticated
// requests carry a UserID; anonymous requests carry only a SessionID.
type Owner struct {
	UserID    string
	Email     string
	SessionID string
}

// Authenticated reports whether the owner is a logged-in user.
func (o Owner) Authenticated() bool {
	return o.UserID != ""
}

// Known reports whether the owner can be identified at all.
func (o Owner) Known() bool {
	return o.UserID != "" || o.SessionID != ""
}
