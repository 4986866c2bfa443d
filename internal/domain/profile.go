package domain

// Profile is owned by the identity subsystem; escrow entities carry only
// foreign references to it. The engine reads profiles to check the
// arbitrator flag when a dispute goes to review.
type Profile struct {
	ID           string
	DisplayName  string
	IsArbitrator bool
	IsVerified   bool
}

type ProfileProvider interface {
	GetProfile(userID string) (*Profile, error)
}
