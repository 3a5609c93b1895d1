package user

import (
	"fmt"

	pkgerrors "user-balance-service/pkg/errors"
)

// Sentinels for errors.Is checks. Not-found sentinels match any id.
var (
	ErrDuplicateEmail    = pkgerrors.NewAlreadyExistsError("user", "User with this email already exists.")
	ErrSenderNotFound    = pkgerrors.NewNotFoundError("sender", "")
	ErrReceiverNotFound  = pkgerrors.NewNotFoundError("receiver", "")
	ErrUserNotFound      = pkgerrors.NewNotFoundError("user", "")
	ErrSelfTransfer      = pkgerrors.NewBusinessRuleError("self_transfer", "Cannot transfer money to yourself.")
	ErrNonPositiveAmount = pkgerrors.NewBusinessRuleError("non_positive_amount", "Transfer amount must be positive.")
	ErrInsufficientFunds = pkgerrors.NewBusinessRuleError("insufficient_funds", "Insufficient funds.")
)

// SenderNotFound reports a transfer whose sender id does not resolve.
func SenderNotFound(id int64) error {
	return pkgerrors.NewNotFoundError("sender", fmt.Sprintf("Sender user with id %d not found.", id))
}

// ReceiverNotFound reports a transfer whose receiver id does not resolve.
func ReceiverNotFound(id int64) error {
	return pkgerrors.NewNotFoundError("receiver", fmt.Sprintf("Receiver user with id %d not found.", id))
}

// UserNotFound reports a lookup for an unknown id.
func UserNotFound(id int64) error {
	return pkgerrors.NewNotFoundError("user", fmt.Sprintf("User with id %d not found.", id))
}
