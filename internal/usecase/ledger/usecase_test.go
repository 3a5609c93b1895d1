package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-balance-service/internal/adapter/memory"
	domain "user-balance-service/internal/domain/user"
	pkgerrors "user-balance-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email string, balance float64) (*domain.User, error) {
	args := m.Called(ctx, name, email, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) Transfer(ctx context.Context, fromID, toID int64, amount float64) (*domain.User, error) {
	args := m.Called(ctx, fromID, toID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository) {
	mockRepo := new(MockRepository)
	svc := New(mockRepo, zaptest.NewLogger(t))
	return svc, mockRepo
}

func setupMemoryService(t *testing.T) *Service {
	logger := zaptest.NewLogger(t)
	return New(memory.NewUserStore(logger), logger)
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{Name: "Alice", Email: "alice@example.com", Balance: 1000}
	mockRepo.On("Create", ctx, "Alice", "alice@example.com", 1000.0).
		Return(&domain.User{ID: 1, Name: "Alice", Email: "alice@example.com", Balance: 1000}, nil)

	resp, err := svc.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, User{ID: 1, Name: "Alice", Email: "alice@example.com", Balance: 1000}, resp.User)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateUserRequest
		field string
	}{
		{name: "missing email", req: CreateUserRequest{Name: "A"}, field: "Email"},
		{name: "invalid email", req: CreateUserRequest{Name: "A", Email: "not-an-email"}, field: "Email"},
		{name: "everything missing", req: CreateUserRequest{}, field: "Email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := setupTestService(t)

			resp, err := svc.CreateUser(context.Background(), tt.req)

			assert.Nil(t, resp)
			var validationErr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, "Bobby", "bob@example.com", 200.0).Return(nil, domain.ErrDuplicateEmail)

	resp, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Bobby", Email: "bob@example.com", Balance: 200})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_EmptyNameAccepted(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, "", "nameless@example.com", 5.0).
		Return(&domain.User{ID: 1, Email: "nameless@example.com", Balance: 5}, nil)

	resp, err := svc.CreateUser(ctx, CreateUserRequest{Email: "nameless@example.com", Balance: 5})

	require.NoError(t, err)
	assert.Equal(t, "", resp.User.Name)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_RepositoryError(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	resp, err := svc.CreateUser(ctx, CreateUserRequest{Name: "A", Email: "a@example.com"})

	assert.Nil(t, resp)
	assert.EqualError(t, err, "boom")
}

func TestCreateUser_IDsAreSequential(t *testing.T) {
	svc := setupMemoryService(t)
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, CreateUserRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "A2", Email: "a@example.com"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "B", Email: "not-an-email"})
	require.Error(t, err)
	second, err := svc.CreateUser(ctx, CreateUserRequest{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.User.ID)
	assert.Equal(t, int64(2), second.User.ID)
}

// ==================== LIST / GET TESTS ====================

func TestListUsers(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		svc, mockRepo := setupTestService(t)
		mockRepo.On("List", mock.Anything).Return([]domain.User{}, nil)

		resp, err := svc.ListUsers(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, resp.Users)
		assert.Empty(t, resp.Users)
	})

	t.Run("Preserves order", func(t *testing.T) {
		svc, mockRepo := setupTestService(t)
		mockRepo.On("List", mock.Anything).Return([]domain.User{
			{ID: 1, Name: "Charlie", Email: "charlie@example.com", Balance: 700},
			{ID: 2, Name: "David", Email: "david@example.com", Balance: 800},
		}, nil)

		resp, err := svc.ListUsers(context.Background())

		require.NoError(t, err)
		require.Len(t, resp.Users, 2)
		assert.Equal(t, "Charlie", resp.Users[0].Name)
		assert.Equal(t, "david@example.com", resp.Users[1].Email)
	})

	t.Run("Repository error", func(t *testing.T) {
		svc, mockRepo := setupTestService(t)
		mockRepo.On("List", mock.Anything).Return(nil, errors.New("boom"))

		resp, err := svc.ListUsers(context.Background())

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}

func TestGetUser(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "Alice"}, nil)
	mockRepo.On("GetByID", mock.Anything, int64(2)).Return(nil, nil)

	resp, err := svc.GetUser(context.Background(), GetUserRequest{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.User.Name)

	resp, err = svc.GetUser(context.Background(), GetUserRequest{ID: 2})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, "User with id 2 not found.", err.Error())
}

// ==================== TRANSFER TESTS ====================

func TestTransfer_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Transfer", ctx, int64(1), int64(2), 25.5).
		Return(&domain.User{ID: 1, Name: "Eve", Balance: 74.5}, nil)

	resp, err := svc.Transfer(ctx, TransferRequest{FromUserID: 1, ToUserID: 2, Amount: 25.5})

	require.NoError(t, err)
	assert.Equal(t, "Transfer successful. New balance for Eve: 74.5", resp.Message)
	assert.Equal(t, int64(1), resp.SenderID)
	assert.Equal(t, "Eve", resp.SenderName)
	assert.Equal(t, 74.5, resp.SenderBalance)
	mockRepo.AssertExpectations(t)
}

func TestTransfer_IntegralBalanceMessage(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	mockRepo.On("Transfer", mock.Anything, int64(1), int64(2), 50.0).
		Return(&domain.User{ID: 1, Name: "Ivan", Balance: 50}, nil)

	resp, err := svc.Transfer(context.Background(), TransferRequest{FromUserID: 1, ToUserID: 2, Amount: 50})

	require.NoError(t, err)
	assert.Equal(t, "Transfer successful. New balance for Ivan: 50.0", resp.Message)
}

func TestTransfer_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		expected error
	}{
		{name: "sender not found", repoErr: domain.SenderNotFound(999), expected: domain.ErrSenderNotFound},
		{name: "receiver not found", repoErr: domain.ReceiverNotFound(999), expected: domain.ErrReceiverNotFound},
		{name: "self transfer", repoErr: domain.ErrSelfTransfer, expected: domain.ErrSelfTransfer},
		{name: "non positive", repoErr: domain.ErrNonPositiveAmount, expected: domain.ErrNonPositiveAmount},
		{name: "insufficient", repoErr: domain.ErrInsufficientFunds, expected: domain.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := setupTestService(t)
			mockRepo.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.repoErr)

			resp, err := svc.Transfer(context.Background(), TransferRequest{FromUserID: 1, ToUserID: 2, Amount: 5})

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestTransfer_WithMemoryStore(t *testing.T) {
	svc := setupMemoryService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Eve", Email: "eve@example.com", Balance: 100})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "Frank", Email: "frank@example.com", Balance: 50})
	require.NoError(t, err)

	resp, err := svc.Transfer(ctx, TransferRequest{FromUserID: 1, ToUserID: 2, Amount: 25.5})
	require.NoError(t, err)
	assert.Equal(t, "Transfer successful. New balance for Eve: 74.5", resp.Message)

	_, err = svc.Transfer(ctx, TransferRequest{FromUserID: 1, ToUserID: 2, Amount: 1000})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 74.5, list.Users[0].Balance)
	assert.Equal(t, 75.5, list.Users[1].Balance)
}

func TestTransferOutcome(t *testing.T) {
	assert.Equal(t, "insufficient_funds", transferOutcome(domain.ErrInsufficientFunds))
	assert.Equal(t, "sender_not_found", transferOutcome(domain.SenderNotFound(3)))
	assert.Equal(t, "receiver_not_found", transferOutcome(domain.ReceiverNotFound(3)))
	assert.Equal(t, "error", transferOutcome(errors.New("boom")))
}

func TestFormatBalance(t *testing.T) {
	tests := map[float64]string{
		74.5:     "74.5",
		100:      "100.0",
		0:        "0.0",
		-20:      "-20.0",
		0.1:      "0.1",
		1e16:     "1e+16",
		1.5e-5:   "1.5e-05",
		123456.7: "123456.7",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, formatBalance(in), "formatBalance(%v)", in)
	}
}
