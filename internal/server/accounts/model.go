package accounts

import "time"

// Account is a registered user's ledger record. Username is the unique,
// case-sensitive key; PasswordHash is the derived credential and never leaves
// the server. Balance is kept in minor currency units. Favorites references
// other usernames without requiring them to exist.
type Account struct {
	ID           string
	Username     string
	PasswordHash []byte
	Balance      int64
	Favorites    []string
	CreatedAt    time.Time
}

// Clone returns a deep copy so callers never share mutable state with the
// store.
func (a *Account) Clone() *Account {
	c := *a
	c.PasswordHash = append([]byte(nil), a.PasswordHash...)
	c.Favorites = append([]string(nil), a.Favorites...)
	return &c
}
