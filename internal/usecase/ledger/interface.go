package ledger

import "context"

// Usecase defines the ledger operations exposed to transports.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error)
	Transfer(ctx context.Context, in TransferRequest) (*TransferResponse, error)
}
