package client

import "context"

// AuthService handles authentication against the training backend
type AuthService struct {
	client *Client
}

// LoginRequest holds the demo login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the token issued by the backend
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// UserInfo describes the authenticated user
type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Login authenticates with username and password and stores the returned
// token on the client for subsequent requests.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	req := LoginRequest{Username: username, Password: password}
	var resp LoginResponse
	if err := s.client.doRequest(ctx, "POST", "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}
	s.client.SetToken(resp.AccessToken)
	return &resp, nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := s.client.doRequest(ctx, "GET", "/api/v1/auth/me", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
