package fortiflex

import (
	"context"
	"errors"
	"fmt"
)

const passwordGrant = "password"

type tokenRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	ClientID  string `json:"client_id"`
	GrantType string `json:"grant_type"`
}

// GenerateToken requests a new bearer token from the FortiCare auth
// endpoint. Empty arguments fall back to the configured API user/password.
// The auth response is relayed as-is (access_token, expires_in, ...).
func (c *Client) GenerateToken(ctx context.Context, apiUser, apiPassword string) (map[string]any, error) {
	if apiUser == "" {
		apiUser = c.creds.APIUser
	}
	if apiPassword == "" {
		apiPassword = c.creds.APIPassword
	}

	c.logger(ctx).Debug().Msg("--> Token...")

	return c.post(ctx, c.authURI, tokenRequest{
		Username:  apiUser,
		Password:  apiPassword,
		ClientID:  c.clientID,
		GrantType: passwordGrant,
	}, "")
}

// Token resolves the bearer token for a call: token itself when non-empty,
// otherwise a freshly generated one. Nothing is cached.
func (c *Client) Token(ctx context.Context, token string) (string, error) {
	if token != "" {
		return token, nil
	}

	resp, err := c.GenerateToken(ctx, "", "")
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	tok, _ := resp["access_token"].(string)
	if tok == "" {
		log := c.logger(ctx).With().Str("uri", c.authURI).Logger()
		return "", c.fail(&log, &UnexpectedError{URI: c.authURI, Err: errors.New("token response has no access_token")})
	}
	return tok, nil
}

// call resolves the token and posts body to the API path.
func (c *Client) call(ctx context.Context, path, token string, body any) (map[string]any, error) {
	tok, err := c.Token(ctx, token)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, c.endpoint(path), body, tok)
}
