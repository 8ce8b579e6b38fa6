package domain

// InterestedParty a prospective buyer or tenant
type InterestedParty struct {
	ID       int64
	FullName string
	UserID   *int64 // user account, nil if the party has no login
}
