package backend

import (
	"context"
	"net/http"

	"blogfront/pkg/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  models.Identity `json:"user"`
	Token string          `json:"token"`
}

// Login exchanges credentials for the identity and token the session store
// persists. Token issuance itself belongs to the backend.
func (c *Client) Login(ctx context.Context, email, password string) (models.Identity, string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/user/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.Identity{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Logout invalidates the session token server side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/user/logout", token, struct{}{}, nil)
}
