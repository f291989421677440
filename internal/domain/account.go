package domain

// Account represents a user account persisted in the accounts table.
//
// Email is the lookup key for every account operation; changing it re-keys
// the record. Admin is set at creation and never changed afterwards (there
// is no promote operation).
type Account struct {
	Name       string
	Email      string
	Credential string
	Admin      bool
}
