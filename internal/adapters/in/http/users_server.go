package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UsersServer handles registration, authentication and account endpoints.
type UsersServer struct {
	registerUserHandler  commands.RegisterUserCommandHandler
	loginHandler         commands.LoginCommandHandler
	updateProfileHandler commands.UpdateProfileCommandHandler

	getProfileHandler queries.GetProfileQueryHandler
	listUsersHandler  queries.ListUsersQueryHandler
}

// NewUsersServer creates a users HTTP server with the required command and
// query handlers.
func NewUsersServer(
	registerUserHandler commands.RegisterUserCommandHandler,
	loginHandler commands.LoginCommandHandler,
	updateProfileHandler commands.UpdateProfileCommandHandler,
	getProfileHandler queries.GetProfileQueryHandler,
	listUsersHandler queries.ListUsersQueryHandler,
) *UsersServer {
	return &UsersServer{
		registerUserHandler:  registerUserHandler,
		loginHandler:         loginHandler,
		updateProfileHandler: updateProfileHandler,
		getProfileHandler:    getProfileHandler,
		listUsersHandler:     listUsersHandler,
	}
}

// RegisterRoutes attaches the user endpoints to the echo instance.
// Register and login are public; everything else requires a bearer token.
func (s *UsersServer) RegisterRoutes(e *echo.Echo, identity ports.IdentityProvider) {
	e.GET("/health", s.Health)

	e.POST("/v1/register", s.Register)
	e.POST("/v1/login", s.Login)

	v1 := e.Group("/v1", AuthMiddleware(identity))
	v1.GET("/profile", s.GetProfile)
	v1.PUT("/profile", s.UpdateProfile)
	v1.GET("/users", s.ListUsers)
}

// Health handles GET /health.
func (s *UsersServer) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "users",
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register handles POST /v1/register.
func (s *UsersServer) Register(ctx echo.Context) error {
	var request registerRequest
	if err := ctx.Bind(&request); err != nil {
		return respondCode(ctx, CodeValidationError, "invalid request body")
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), request.Email, request.Name, request.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	registered, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		// Registration reports duplicates as USER_EXISTS; profile updates
		// reuse the same uniqueness error as EMAIL_EXISTS.
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return respondCode(ctx, CodeUserExists, "User with this email already exists")
		}
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]string{"user_id": registered.ID().String()})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /v1/login.
func (s *UsersServer) Login(ctx echo.Context) error {
	var request loginRequest
	if err := ctx.Bind(&request); err != nil {
		return respondCode(ctx, CodeValidationError, "invalid request body")
	}

	cmd, err := commands.NewLoginCommand(request.Email, request.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.loginHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]string{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"user_id":      result.UserID,
	})
}

// GetProfile handles GET /v1/profile, returning the caller's own account.
func (s *UsersServer) GetProfile(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	query, err := queries.NewGetProfileQuery(caller.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getProfileHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]any{"user": userJSON(result)})
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateProfile handles PUT /v1/profile.
func (s *UsersServer) UpdateProfile(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	var request updateProfileRequest
	if err := ctx.Bind(&request); err != nil {
		return respondCode(ctx, CodeValidationError, "invalid request body")
	}

	cmd, err := commands.NewUpdateProfileCommand(caller.ID(), request.Name, request.Email)
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err := s.updateProfileHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]string{"message": "Profile updated successfully"})
}

// ListUsers handles GET /v1/users. Admin only.
func (s *UsersServer) ListUsers(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	page, size, err := pagination(ctx)
	if err != nil {
		return respondCode(ctx, CodeValidationError, err.Error())
	}

	query, err := queries.NewListUsersQuery(caller, page, size)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.listUsersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		// Non-admin enumeration is refused at the transport level.
		if errors.Is(err, errs.ErrAccessDenied) {
			return ctx.JSON(http.StatusForbidden, envelope{
				Success: false,
				Error:   &errorBody{Code: CodeAccessDenied, Message: "Insufficient permissions"},
			})
		}
		return respondError(ctx, err)
	}

	users := make([]map[string]any, len(result.Users))
	for i, u := range result.Users {
		users[i] = userJSON(u)
	}

	return respondData(ctx, map[string]any{
		"users": users,
		"total": result.Total,
		"page":  result.Page,
		"size":  result.Size,
	})
}

func userJSON(u queries.UserResponse) map[string]any {
	return map[string]any{
		"id":         u.ID.String(),
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"created_at": u.CreatedAt.Format(time.RFC3339),
		"updated_at": u.UpdatedAt.Format(time.RFC3339),
	}
}
