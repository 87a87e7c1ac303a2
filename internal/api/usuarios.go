package api

import (
	"context"
	"net/http"

	"biblio-cli/internal/model"
)

func (c *Client) ListUsuarios(ctx context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	err := c.doJSON(ctx, http.MethodGet, "/api/usuarios", nil, &out)
	return out, err
}

func (c *Client) CreateUsuario(ctx context.Context, r model.Registro) error {
	return c.doJSON(ctx, http.MethodPost, "/api/usuarios", r, nil)
}

func (c *Client) UpdateUsuario(ctx context.Context, id string, r model.Registro) error {
	return c.doJSON(ctx, http.MethodPut, "/api/usuarios/"+id, r, nil)
}

func (c *Client) DeleteUsuario(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/usuarios/"+id, nil, nil)
}

// AjustarMulta applies a fine payment or manual adjustment to one patron.
func (c *Client) AjustarMulta(ctx context.Context, usuarioID string, a model.AjusteMulta) error {
	return c.doJSON(ctx, http.MethodPut, "/api/usuarios/"+usuarioID+"/multa", a, nil)
}

// ResumenPrestamos fetches the per-patron loan summary.
func (c *Client) ResumenPrestamos(ctx context.Context, usuarioID string) (model.ResumenPrestamos, error) {
	var out model.ResumenPrestamos
	err := c.doJSON(ctx, http.MethodGet, "/api/mis-prestamos/"+usuarioID, nil, &out)
	return out, err
}
