package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-balance-service/internal/usecase/ledger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  ledger.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc ledger.Usecase, log *zap.Logger) *UserHandler {
	useJSONFieldNames()
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Name must be present but may be empty. Balance is optional and defaults to 0.
type CreateUserRequest struct {
	Name    *string        `json:"name" binding:"required"`
	Email   string         `json:"email" binding:"required,email"`
	Balance optionalNumber `json:"balance"`
}

// optionalNumber tells an absent JSON number apart from an explicit null.
type optionalNumber struct {
	value float64
	null  bool
}

func (n *optionalNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.null = true
		return nil
	}
	return json.Unmarshal(b, &n.value)
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Balance float64 `json:"balance"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	if req.Balance.null {
		writeValidationIssues(c, h.log, ValidationIssue{
			Loc:  []string{"body", "balance"},
			Msg:  "Input should be a valid number",
			Type: "float_type",
		})
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), ledger.CreateUserRequest{
		Name:    *req.Name,
		Email:   req.Email,
		Balance: req.Balance.value,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(resp.User))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toUserResponse(u)
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: []ValidationIssue{{
			Loc:  []string{"path", "id"},
			Msg:  "Input should be a valid integer",
			Type: "int_parsing",
		}}})
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), ledger.GetUserRequest{ID: id})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp.User))
}

func toUserResponse(u ledger.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Balance: u.Balance,
	}
}
