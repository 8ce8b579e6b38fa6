package domain

// Contract sale or lease contract. Read-only for the scheduler:
// a vigent contract blocks reservations on the same property.
type Contract struct {
	ID         int64
	PropertyID int64
	Vigente    bool
}
