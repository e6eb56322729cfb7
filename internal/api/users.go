package api

import (
	"context"
	"net/http"
	"net/url"
	"support-portal/internal/domain"
)

// UserPayload is the body of user create and update calls. An empty password
// on update leaves it unchanged.
type UserPayload struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password,omitempty"`
	Role     domain.Role   `json:"role"`
	Sector   domain.Sector `json:"sector"`
	IsActive *bool         `json:"isActive,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	users := []domain.User{}
	if err := c.getJSON(ctx, "/users", nil, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, payload UserPayload) (*domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPost, "/users", token, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id domain.ID, payload UserPayload) (*domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(id.String()), token, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id domain.ID) error {
	return c.delete(ctx, "/users/"+url.PathEscape(id.String()), token)
}
