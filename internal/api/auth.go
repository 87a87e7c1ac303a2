package api

import (
	"context"
	"net/http"

	"biblio-cli/internal/model"
)

// Authenticate exchanges credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context, correo, clave string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth", model.Credenciales{Correo: correo, Clave: clave}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a patron account through the public registration form.
func (c *Client) Register(ctx context.Context, r model.Registro) error {
	return c.doJSON(ctx, http.MethodPost, "/api/usuarios", r, nil)
}
