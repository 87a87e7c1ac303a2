package main

import (
	"github.com/spf13/cobra"

	"biblio-cli/internal/model"
	"biblio-cli/internal/screen"
)

// form accumulates flag bindings for one entity form. Each binding only
// fires when the user set the flag, so edit commands patch the prefilled
// draft field by field.
type form[D any] struct {
	c   *cobra.Command
	ops []func(*D)
}

func (f *form[D]) str(name, usage string, set func(*D, string)) {
	v := f.c.Flags().String(name, "", usage)
	f.ops = append(f.ops, func(d *D) {
		if f.c.Flags().Changed(name) {
			set(d, *v)
		}
	})
}

func (f *form[D]) num(name, usage string, set func(*D, int)) {
	v := f.c.Flags().Int(name, 0, usage)
	f.ops = append(f.ops, func(d *D) {
		if f.c.Flags().Changed(name) {
			set(d, *v)
		}
	})
}

func (f *form[D]) apply(d *D) {
	for _, op := range f.ops {
		op(d)
	}
}

func materialesSpec() entitySpec[model.Material, model.Material] {
	return entitySpec[model.Material, model.Material]{
		use:    "materiales",
		short:  "Gestión del catálogo de materiales",
		res:    screen.Materiales,
		header: []string{"ID", "CÓDIGO", "TÍTULO", "AUTOR", "DISP/TOTAL", "ESTADO"},
		fila: func(m model.Material) []string {
			return []string{m.ID, m.Codigo, m.Titulo, m.Autor,
				itoa(m.EjemplaresDisponibles) + "/" + itoa(m.EjemplaresTotal), m.Estado}
		},
		flags: func(c *cobra.Command) func(*model.Material) {
			f := &form[model.Material]{c: c}
			f.str("tipo", "tipo de material (libro, revista)", func(d *model.Material, v string) { d.Tipo = v })
			f.str("titulo", "título", func(d *model.Material, v string) { d.Titulo = v })
			f.str("autor", "autor", func(d *model.Material, v string) { d.Autor = v })
			f.str("codigo", "código de inventario", func(d *model.Material, v string) { d.Codigo = v })
			f.str("categoria", "categoría", func(d *model.Material, v string) { d.Categoria = v })
			f.num("total", "ejemplares en total", func(d *model.Material, v int) { d.EjemplaresTotal = v })
			f.num("disponibles", "ejemplares disponibles", func(d *model.Material, v int) { d.EjemplaresDisponibles = v })
			f.str("publicacion", "fecha de publicación (YYYY-MM-DD)", func(d *model.Material, v string) { d.FechaPublicacion = v })
			f.str("editorial", "editorial", func(d *model.Material, v string) { d.Editorial = v })
			f.str("ubicacion", "ubicación en estantería", func(d *model.Material, v string) { d.Ubicacion = v })
			f.str("estado", "estado del material", func(d *model.Material, v string) { d.Estado = v })
			f.str("portada", "URL de la imagen de portada", func(d *model.Material, v string) { d.ImagenPortada = v })
			f.str("edicion", "edición", func(d *model.Material, v string) { d.Edicion = v })
			f.num("paginas", "número de páginas", func(d *model.Material, v int) { d.Paginas = v })
			return f.apply
		},
	}
}

func usuariosSpec() entitySpec[model.Usuario, model.Registro] {
	return entitySpec[model.Usuario, model.Registro]{
		use:    "usuarios",
		short:  "Gestión de usuarios de la biblioteca",
		res:    screen.Usuarios,
		header: []string{"ID", "NOMBRE", "IDENTIFICACIÓN", "CORREO", "PRÉSTAMOS", "MULTA", "ESTADO"},
		fila: func(u model.Usuario) []string {
			return []string{u.ID, u.NombreCompleto(), u.Identificacion, u.Correo,
				itoa(u.PrestamosActivos), ftoa(u.MultaAcumulada), u.Estado}
		},
		flags: func(c *cobra.Command) func(*model.Registro) {
			f := &form[model.Registro]{c: c}
			f.str("nombre", "nombre", func(d *model.Registro, v string) { d.Nombre = v })
			f.str("apellido", "apellido", func(d *model.Registro, v string) { d.Apellido = v })
			f.str("identificacion", "identificación", func(d *model.Registro, v string) { d.Identificacion = v })
			f.str("correo", "correo electrónico", func(d *model.Registro, v string) { d.Correo = v })
			f.str("telefono", "teléfono (10 dígitos)", func(d *model.Registro, v string) { d.Telefono = v })
			f.str("clave", "clave (solo al crear)", func(d *model.Registro, v string) { d.Clave = v })
			return f.apply
		},
	}
}

func autoresSpec() entitySpec[model.Autor, model.Autor] {
	return entitySpec[model.Autor, model.Autor]{
		use:    "autores",
		short:  "Gestión de autores",
		res:    screen.Autores,
		header: []string{"ID", "NOMBRE", "FOTO"},
		fila: func(a model.Autor) []string {
			return []string{a.ID, a.Nombre, a.Foto}
		},
		flags: func(c *cobra.Command) func(*model.Autor) {
			f := &form[model.Autor]{c: c}
			f.str("nombre", "nombre del autor", func(d *model.Autor, v string) { d.Nombre = v })
			f.str("biografia", "biografía", func(d *model.Autor, v string) { d.Biografia = v })
			f.str("foto", "URL de la foto", func(d *model.Autor, v string) { d.Foto = v })
			return f.apply
		},
	}
}

func categoriasSpec() entitySpec[model.Categoria, model.Categoria] {
	return entitySpec[model.Categoria, model.Categoria]{
		use:    "categorias",
		short:  "Gestión de categorías",
		res:    screen.Categorias,
		header: []string{"ID", "NOMBRE", "DESCRIPCIÓN"},
		fila: func(cat model.Categoria) []string {
			return []string{cat.ID, cat.Nombre, cat.Descripcion}
		},
		flags: func(c *cobra.Command) func(*model.Categoria) {
			f := &form[model.Categoria]{c: c}
			f.str("nombre", "nombre de la categoría", func(d *model.Categoria, v string) { d.Nombre = v })
			f.str("descripcion", "descripción", func(d *model.Categoria, v string) { d.Descripcion = v })
			return f.apply
		},
	}
}

func editorialesSpec() entitySpec[model.Editorial, model.Editorial] {
	return entitySpec[model.Editorial, model.Editorial]{
		use:    "editoriales",
		short:  "Gestión de editoriales",
		res:    screen.Editoriales,
		header: []string{"ID", "NOMBRE", "PAÍS", "FUNDACIÓN"},
		fila: func(e model.Editorial) []string {
			return []string{e.ID, e.Nombre, e.Pais, e.Fundacion}
		},
		flags: func(c *cobra.Command) func(*model.Editorial) {
			f := &form[model.Editorial]{c: c}
			f.str("nombre", "nombre de la editorial", func(d *model.Editorial, v string) { d.Nombre = v })
			f.str("pais", "país", func(d *model.Editorial, v string) { d.Pais = v })
			f.str("fundacion", "año de fundación", func(d *model.Editorial, v string) { d.Fundacion = v })
			return f.apply
		},
	}
}
