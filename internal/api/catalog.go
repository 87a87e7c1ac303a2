package api

import (
	"context"
	"net/http"

	"biblio-cli/internal/model"
)

// Catalog entity endpoints. Each entity exposes the same list/create/
// update/delete quartet; updates and deletes address a single id.

func (c *Client) ListMateriales(ctx context.Context) ([]model.Material, error) {
	var out []model.Material
	err := c.doJSON(ctx, http.MethodGet, "/api/materiales", nil, &out)
	return out, err
}

func (c *Client) CreateMaterial(ctx context.Context, m model.Material) error {
	return c.doJSON(ctx, http.MethodPost, "/api/materiales", m, nil)
}

func (c *Client) UpdateMaterial(ctx context.Context, id string, m model.Material) error {
	return c.doJSON(ctx, http.MethodPut, "/api/materiales/"+id, m, nil)
}

func (c *Client) DeleteMaterial(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/materiales/"+id, nil, nil)
}

func (c *Client) ListAutores(ctx context.Context) ([]model.Autor, error) {
	var out []model.Autor
	err := c.doJSON(ctx, http.MethodGet, "/api/autores", nil, &out)
	return out, err
}

func (c *Client) CreateAutor(ctx context.Context, a model.Autor) error {
	return c.doJSON(ctx, http.MethodPost, "/api/autores", a, nil)
}

func (c *Client) UpdateAutor(ctx context.Context, id string, a model.Autor) error {
	return c.doJSON(ctx, http.MethodPut, "/api/autores/"+id, a, nil)
}

func (c *Client) DeleteAutor(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/autores/"+id, nil, nil)
}

func (c *Client) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	err := c.doJSON(ctx, http.MethodGet, "/api/categorias", nil, &out)
	return out, err
}

func (c *Client) CreateCategoria(ctx context.Context, cat model.Categoria) error {
	return c.doJSON(ctx, http.MethodPost, "/api/categorias", cat, nil)
}

func (c *Client) UpdateCategoria(ctx context.Context, id string, cat model.Categoria) error {
	return c.doJSON(ctx, http.MethodPut, "/api/categorias/"+id, cat, nil)
}

func (c *Client) DeleteCategoria(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/categorias/"+id, nil, nil)
}

func (c *Client) ListEditoriales(ctx context.Context) ([]model.Editorial, error) {
	var out []model.Editorial
	err := c.doJSON(ctx, http.MethodGet, "/api/editoriales", nil, &out)
	return out, err
}

func (c *Client) CreateEditorial(ctx context.Context, e model.Editorial) error {
	return c.doJSON(ctx, http.MethodPost, "/api/editoriales", e, nil)
}

func (c *Client) UpdateEditorial(ctx context.Context, id string, e model.Editorial) error {
	return c.doJSON(ctx, http.MethodPut, "/api/editoriales/"+id, e, nil)
}

func (c *Client) DeleteEditorial(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/editoriales/"+id, nil, nil)
}
