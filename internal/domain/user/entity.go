package user

// User represents a ledger participant.
type User struct {
	ID      int64   // ID is assigned by the store, starting at 1
	Name    string  // Name is the display name of the user
	Email   string  // Email is unique across all users (exact match)
	Balance float64 // Balance is mutated only by transfers after creation
}
