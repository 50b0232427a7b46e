package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bjaus/endpoint"
)

// User is the wire representation of one user.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" required:"true"`
	Email     string    `json:"email" db:"email" required:"true"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserList is the response for list operations.
type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// UserError is the declared error type of every user endpoint. The value
// carries its own status, so failures serialize as-is with that status.
type UserError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *UserError) Error() string   { return e.Message }
func (e *UserError) StatusCode() int { return e.Status }

func errNotFound(id uuid.UUID) *UserError {
	return &UserError{Status: http.StatusNotFound, Code: "user_not_found", Message: "no user with id " + id.String()}
}

func errConflict(email string) *UserError {
	return &UserError{Status: http.StatusConflict, Code: "email_taken", Message: "email already registered: " + email}
}

var usersTag = endpoint.Tag{Name: "users", Description: "User management."}

// exampleUser backs the documented response examples.
var exampleUser = User{
	ID:        uuid.MustParse("7d9db456-31c2-4b1f-8b45-9a4ef18dd14b"),
	Name:      "Ada Lovelace",
	Email:     "ada@example.com",
	Role:      "admin",
	CreatedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
}

// ListUsers returns all users, optionally filtered by role.
type ListUsers struct{}

// ListUsersRequest carries the optional role filter.
type ListUsersRequest struct {
	Role string `query:"role" doc:"Only return users with this role"`
}

func (ListUsers) Method() string { return http.MethodGet }
func (ListUsers) Path() string   { return "/users" }

func (ListUsers) Handle(ctx context.Context, env *Env, req *ListUsersRequest) (*UserList, error) {
	users, err := env.Store.List(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	return &UserList{Users: users, Total: len(users)}, nil
}

func (ListUsers) Docs() endpoint.Docs[UserList] {
	return endpoint.Docs[UserList]{
		Summary: "List users",
		Tag:     usersTag,
		Successes: []endpoint.Success[UserList]{
			{Description: "All users, optionally filtered by role", Example: &UserList{Users: []User{exampleUser}, Total: 1}},
		},
	}
}

// CreateUser registers a new user.
type CreateUser struct{}

// CreateUserRequest carries the new user's attributes.
type CreateUserRequest struct {
	Body struct {
		Name  string `json:"name" required:"true" validate:"required"`
		Email string `json:"email" required:"true" validate:"required,email"`
		Role  string `json:"role" validate:"omitempty,oneof=admin member"`
	}
}

func (CreateUser) Method() string { return http.MethodPost }
func (CreateUser) Path() string   { return "/users" }

func (CreateUser) Handle(ctx context.Context, env *Env, req *CreateUserRequest) (*User, error) {
	u := User{
		ID:        uuid.New(),
		Name:      req.Body.Name,
		Email:     req.Body.Email,
		Role:      req.Body.Role,
		CreatedAt: time.Now().UTC(),
	}
	if u.Role == "" {
		u.Role = "member"
	}
	if err := env.Store.Create(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (CreateUser) Docs() endpoint.Docs[User] {
	return endpoint.Docs[User]{
		Summary:     "Create user",
		Description: "Registers a new user. Email addresses are unique.",
		Tag:         usersTag,
		Successes: []endpoint.Success[User]{
			{Status: http.StatusCreated, Description: "The created user", Example: &exampleUser},
		},
		Failures: []endpoint.Failure{
			{Description: "Email already registered", Example: errConflict("ada@example.com")},
		},
	}
}

// GetUser fetches a single user by id.
type GetUser struct{}

// GetUserRequest carries the user id path parameter.
type GetUserRequest struct {
	ID uuid.UUID `path:"id" doc:"User id"`
}

func (GetUser) Method() string { return http.MethodGet }
func (GetUser) Path() string   { return "/users/:id" }

func (GetUser) Handle(ctx context.Context, env *Env, req *GetUserRequest) (*User, error) {
	return env.Store.Get(ctx, req.ID)
}

func (GetUser) Docs() endpoint.Docs[User] {
	return endpoint.Docs[User]{
		Summary: "Get user by id",
		Tag:     usersTag,
		Successes: []endpoint.Success[User]{
			{Description: "The requested user", Example: &exampleUser},
		},
		Failures: []endpoint.Failure{
			{Description: "No such user", Example: errNotFound(exampleUser.ID)},
		},
	}
}

// UpdateUser replaces a user's mutable attributes.
type UpdateUser struct{}

// UpdateUserRequest carries the user id and the replacement attributes.
type UpdateUserRequest struct {
	ID   uuid.UUID `path:"id" doc:"User id"`
	Body struct {
		Name  string `json:"name" required:"true" validate:"required"`
		Email string `json:"email" required:"true" validate:"required,email"`
		Role  string `json:"role" validate:"omitempty,oneof=admin member"`
	}
}

func (UpdateUser) Method() string { return http.MethodPut }
func (UpdateUser) Path() string   { return "/users/:id" }

func (UpdateUser) Handle(ctx context.Context, env *Env, req *UpdateUserRequest) (*User, error) {
	u, err := env.Store.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	u.Name = req.Body.Name
	u.Email = req.Body.Email
	if req.Body.Role != "" {
		u.Role = req.Body.Role
	}
	if err := env.Store.Update(ctx, *u); err != nil {
		return nil, err
	}
	return u, nil
}

func (UpdateUser) Docs() endpoint.Docs[User] {
	return endpoint.Docs[User]{
		Summary: "Update user",
		Tag:     usersTag,
		Successes: []endpoint.Success[User]{
			{Description: "The updated user", Example: &exampleUser},
		},
		Failures: []endpoint.Failure{
			{Description: "No such user", Example: errNotFound(exampleUser.ID)},
		},
	}
}

// DeleteUser removes a user.
type DeleteUser struct{}

// DeleteUserRequest carries the user id path parameter.
type DeleteUserRequest struct {
	ID uuid.UUID `path:"id" doc:"User id"`
}

func (DeleteUser) Method() string { return http.MethodDelete }
func (DeleteUser) Path() string   { return "/users/:id" }

func (DeleteUser) Handle(ctx context.Context, env *Env, req *DeleteUserRequest) (*endpoint.Void, error) {
	if err := env.Store.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return &endpoint.Void{}, nil
}

func (DeleteUser) Docs() endpoint.Docs[endpoint.Void] {
	return endpoint.Docs[endpoint.Void]{
		Summary: "Delete user",
		Tag:     usersTag,
		Failures: []endpoint.Failure{
			{Description: "No such user", Example: errNotFound(exampleUser.ID)},
		},
	}
}
