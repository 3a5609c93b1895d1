package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-balance-service/internal/domain/user"
	"user-balance-service/internal/telemetry"
	pkgerrors "user-balance-service/pkg/errors"
	"user-balance-service/pkg/logger"
)

// Repository defines the storage operations the ledger relies on.
// Implementations must run Create and Transfer atomically with respect to
// each other and to concurrent calls.
type Repository interface {
	Create(ctx context.Context, name, email string, balance float64) (*domain.User, error)  // Register a user, rejecting duplicate emails
	GetByID(ctx context.Context, id int64) (*domain.User, error)                            // nil when the id is unknown
	List(ctx context.Context) ([]domain.User, error)                                        // All users in creation order
	Transfer(ctx context.Context, fromID, toID int64, amount float64) (*domain.User, error) // Validate and move funds, returns the sender
}

// Service implements the ledger business operations on top of a Repository.
type Service struct {
	repo     Repository          // Repository for user state
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new ledger Service.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return pkgerrors.NewValidationError("", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	field := ""
	if len(validationErrors) == 1 {
		field = validationErrors[0].Field()
	}
	return pkgerrors.NewValidationError(field, strings.Join(messages, ", "))
}

// CreateUser registers a new user. Emails must be unique (exact match).
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		telemetry.UserCreateRejectedTotal.WithLabelValues("validation").Inc()
		return nil, formatValidationError(err)
	}

	u, err := s.repo.Create(ctx, in.Name, in.Email, in.Balance)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			log.Warn("email already exists", zap.String("email", in.Email))
			telemetry.UserCreateRejectedTotal.WithLabelValues("duplicate_email").Inc()
			return nil, err
		}
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	telemetry.UsersCreatedTotal.Inc()
	log.Info("user created", zap.Int64("id", u.ID))

	return &CreateUserResponse{User: toDTO(u)}, nil
}

// ListUsers returns every user in creation order.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := s.repo.List(ctx)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = toDTO(&domainUsers[i])
	}

	logger.WithContext(ctx, s.log).Debug("listed users", zap.Int("count", len(users)))
	return &ListUsersResponse{Users: users}, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, domain.UserNotFound(in.ID)
	}
	return &GetUserResponse{User: toDTO(u)}, nil
}

// Transfer moves funds between two users. The repository applies the rules
// and the paired debit/credit atomically; nothing changes on failure.
func (s *Service) Transfer(ctx context.Context, in TransferRequest) (*TransferResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("transferring funds",
		zap.Int64("from_id", in.FromUserID),
		zap.Int64("to_id", in.ToUserID),
		zap.Float64("amount", in.Amount),
	)

	sender, err := s.repo.Transfer(ctx, in.FromUserID, in.ToUserID, in.Amount)
	if err != nil {
		outcome := transferOutcome(err)
		telemetry.TransfersTotal.WithLabelValues(outcome).Inc()
		if pkgerrors.StatusOf(err) >= 500 {
			log.Error("transfer failed", zap.Error(err))
		} else {
			log.Warn("transfer rejected", zap.String("reason", outcome), zap.Error(err))
		}
		return nil, err
	}

	telemetry.TransfersTotal.WithLabelValues("success").Inc()
	telemetry.TransferAmount.Observe(in.Amount)
	log.Info("transfer completed", zap.Int64("from_id", sender.ID), zap.Float64("sender_balance", sender.Balance))

	return &TransferResponse{
		Message:       fmt.Sprintf("Transfer successful. New balance for %s: %s", sender.Name, formatBalance(sender.Balance)),
		SenderID:      sender.ID,
		SenderName:    sender.Name,
		SenderBalance: sender.Balance,
	}, nil
}

// transferOutcome names a transfer failure for metrics and logs.
func transferOutcome(err error) string {
	var rule *pkgerrors.BusinessRuleError
	if errors.As(err, &rule) {
		return rule.Rule
	}
	var notFound *pkgerrors.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Resource + "_not_found"
	}
	return "error"
}

func toDTO(u *domain.User) User {
	return User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Balance: u.Balance,
	}
}
