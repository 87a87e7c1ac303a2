package api

import (
	"context"
	"net/http"

	"biblio-cli/internal/model"
)

func (c *Client) ListPrestamos(ctx context.Context) ([]model.Prestamo, error) {
	var out []model.Prestamo
	err := c.doJSON(ctx, http.MethodGet, "/api/prestamos", nil, &out)
	return out, err
}

// CrearPrestamo opens a new loan. The server validates availability and
// patron standing; its rejection message is surfaced verbatim.
func (c *Client) CrearPrestamo(ctx context.Context, p model.NuevoPrestamo) error {
	return c.doJSON(ctx, http.MethodPost, "/api/prestamos", p, nil)
}

// RegistrarDevolucion marks a loan as returned.
func (c *Client) RegistrarDevolucion(ctx context.Context, d model.Devolucion) error {
	return c.doJSON(ctx, http.MethodPost, "/api/prestamos/devolucion", d, nil)
}
