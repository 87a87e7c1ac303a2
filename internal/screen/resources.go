package screen

import (
	"strings"

	"biblio-cli/internal/api"
	"biblio-cli/internal/model"
	"biblio-cli/internal/validate"
)

// Materiales is the catalog-materials screen configuration. The edit form
// shows the publication date as a bare calendar day, so the pre-fill
// truncates any time component the server sent along.
func Materiales(c *api.Client) Resource[model.Material, model.Material] {
	return Resource[model.Material, model.Material]{
		Nombre: "material",
		Plural: "materiales",
		List:   c.ListMateriales,
		Create: c.CreateMaterial,
		Update: c.UpdateMaterial,
		Delete: c.DeleteMaterial,
		ID:     func(m model.Material) string { return m.ID },
		ToDraft: func(m model.Material) model.Material {
			m.FechaPublicacion, _, _ = strings.Cut(m.FechaPublicacion, "T")
			return m
		},
		Validate: func(m model.Material, _ bool) error { return validate.Material(m) },
	}
}

// Usuarios is the patrons screen. The form draft carries only the
// editable fields; server-owned ones (fine, status, loan count) never
// round-trip, and the password is blank on edit.
func Usuarios(c *api.Client) Resource[model.Usuario, model.Registro] {
	return Resource[model.Usuario, model.Registro]{
		Nombre: "usuario",
		Plural: "usuarios",
		List:   c.ListUsuarios,
		Create: c.CreateUsuario,
		Update: c.UpdateUsuario,
		Delete: c.DeleteUsuario,
		ID:     func(u model.Usuario) string { return u.ID },
		ToDraft: func(u model.Usuario) model.Registro {
			return model.Registro{
				Nombre:         u.Nombre,
				Apellido:       u.Apellido,
				Identificacion: u.Identificacion,
				Correo:         u.Correo,
				Telefono:       u.Telefono,
			}
		},
		Validate: validate.Registro,
	}
}

func Autores(c *api.Client) Resource[model.Autor, model.Autor] {
	return Resource[model.Autor, model.Autor]{
		Nombre:   "autor",
		Plural:   "autores",
		List:     c.ListAutores,
		Create:   c.CreateAutor,
		Update:   c.UpdateAutor,
		Delete:   c.DeleteAutor,
		ID:       func(a model.Autor) string { return a.ID },
		ToDraft:  func(a model.Autor) model.Autor { return a },
		Validate: func(a model.Autor, _ bool) error { return validate.Autor(a) },
	}
}

func Categorias(c *api.Client) Resource[model.Categoria, model.Categoria] {
	return Resource[model.Categoria, model.Categoria]{
		Nombre:   "categoría",
		Plural:   "categorías",
		Femenino: true,
		List:     c.ListCategorias,
		Create:   c.CreateCategoria,
		Update:   c.UpdateCategoria,
		Delete:   c.DeleteCategoria,
		ID:       func(cat model.Categoria) string { return cat.ID },
		ToDraft:  func(cat model.Categoria) model.Categoria { return cat },
		Validate: func(cat model.Categoria, _ bool) error { return validate.Categoria(cat) },
	}
}

func Editoriales(c *api.Client) Resource[model.Editorial, model.Editorial] {
	return Resource[model.Editorial, model.Editorial]{
		Nombre:   "editorial",
		Plural:   "editoriales",
		Femenino: true,
		List:     c.ListEditoriales,
		Create:   c.CreateEditorial,
		Update:   c.UpdateEditorial,
		Delete:   c.DeleteEditorial,
		ID:       func(e model.Editorial) string { return e.ID },
		ToDraft:  func(e model.Editorial) model.Editorial { return e },
		Validate: func(e model.Editorial, _ bool) error { return validate.Editorial(e) },
	}
}
