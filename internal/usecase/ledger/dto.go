package ledger

// CreateUserRequest represents the command for registering a user.
// Name and Balance are taken as given, including empty names and negative balances.
type CreateUserRequest struct {
	Name    string
	Email   string `validate:"required,email"`
	Balance float64
}

// CreateUserResponse carries the stored user with its assigned id.
type CreateUserResponse struct {
	User User
}

// ListUsersResponse lists users in creation order.
type ListUsersResponse struct {
	Users []User
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User User
}

// TransferRequest represents a balance movement between two users.
type TransferRequest struct {
	FromUserID int64
	ToUserID   int64
	Amount     float64
}

// TransferResponse confirms a transfer with the sender's new balance.
type TransferResponse struct {
	Message       string
	SenderID      int64
	SenderName    string
	SenderBalance float64
}

// User represents a user DTO for API responses.
type User struct {
	ID      int64
	Name    string
	Email   string
	Balance float64
}
