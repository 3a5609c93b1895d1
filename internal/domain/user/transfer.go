package user

// ValidateTransfer checks a transfer against the ledger rules.
// from and to are the resolved participants (nil when the id is unknown).
// Checks run in a fixed order and the first failure is returned.
func ValidateTransfer(from, to *User, fromID, toID int64, amount float64) error {
	if from == nil {
		return SenderNotFound(fromID)
	}
	if to == nil {
		return ReceiverNotFound(toID)
	}
	if fromID == toID {
		return ErrSelfTransfer
	}
	// negated so that NaN is rejected too
	if !(amount > 0) {
		return ErrNonPositiveAmount
	}
	if from.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyTransfer moves amount from one user to the other.
// Callers must have validated the transfer and must hold the lock guarding both users.
func ApplyTransfer(from, to *User, amount float64) {
	from.Balance -= amount
	to.Balance += amount
}
