package model

// AdminUser is a back-office account allowed to mutate the inventory.
// PasswordHash is a bcrypt digest; the plaintext is never stored.
type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
}
