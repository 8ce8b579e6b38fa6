package domain

// PropertyStatus commercial status of a property
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusReserved  PropertyStatus = "reserved"
	PropertyStatusRented    PropertyStatus = "rented"
	PropertyStatusSold      PropertyStatus = "sold"
)

// Property the part of a property the scheduler reads and writes
type Property struct {
	ID          int64
	OwnerUserID *int64 // user account of the owner, nil if the owner has no login
	Title       string
	Status      PropertyStatus
}

// IsOwnedBy reports whether userID is the owner's user account
func (p *Property) IsOwnedBy(userID int64) bool {
	return p.OwnerUserID != nil && *p.OwnerUserID == userID
}
