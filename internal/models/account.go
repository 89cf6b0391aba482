package models

// Account is the single persistent entity: a registered identity with its
// credential hash, verification status, and pending verification token.
//
// Email deliberately carries no uniqueness constraint. Signup persistence is
// fire-and-forget, so two concurrent signups with the same address can both
// land; the store resolves lookups to the oldest matching record.
type Account struct {
	BaseModel

	Name         string `json:"name"`
	Email        string `gorm:"index;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	IsVerified bool `gorm:"default:false" json:"is_verified"`

	// VerificationToken is cleared on the first redemption attempt,
	// regardless of whether the status update succeeded.
	VerificationToken string `gorm:"index" json:"-"`
}
