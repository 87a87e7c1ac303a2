package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"biblio-cli/internal/model"
)

func validRegistro() model.Registro {
	return model.Registro{
		Nombre:         "Ana",
		Apellido:       "Gómez",
		Identificacion: "A100",
		Correo:         "ana@biblioteca.mx",
		Telefono:       "5512345678",
		Clave:          "secreta",
	}
}

func TestRegistro(t *testing.T) {
	assert.NoError(t, Registro(validRegistro(), true))

	r := validRegistro()
	r.Nombre = "  "
	assert.EqualError(t, Registro(r, true), "nombre es requerido")

	r = validRegistro()
	r.Correo = "no-es-correo"
	assert.Error(t, Registro(r, true))

	r = validRegistro()
	r.Telefono = "123"
	assert.Error(t, Registro(r, true))

	r = validRegistro()
	r.Telefono = "55123456789" // 11 digits
	assert.Error(t, Registro(r, true))

	r = validRegistro()
	r.Clave = "abc"
	assert.Error(t, Registro(r, true))

	// edit form omits the password entirely
	r = validRegistro()
	r.Clave = ""
	assert.NoError(t, Registro(r, false))
}

func TestCorreo(t *testing.T) {
	assert.True(t, Correo("a.b+c@x.mx"))
	assert.False(t, Correo("a@b"))
	assert.False(t, Correo("@x.mx"))
}

func TestTelefono(t *testing.T) {
	assert.True(t, Telefono("1234567890"))
	assert.False(t, Telefono("12345678a0"))
	assert.False(t, Telefono("12345"))
}

func TestFechaISO(t *testing.T) {
	assert.True(t, FechaISO("2025-03-12"))
	assert.False(t, FechaISO("12/03/2025"))
}

func TestAutor(t *testing.T) {
	assert.NoError(t, Autor(model.Autor{Nombre: "X", Biografia: "Y", Foto: "Z"}))
	assert.Error(t, Autor(model.Autor{Nombre: "X", Biografia: "Y"}))
}

func TestCategoriaEditorial(t *testing.T) {
	assert.NoError(t, Categoria(model.Categoria{Nombre: "Novela", Descripcion: "Ficción"}))
	assert.Error(t, Categoria(model.Categoria{Nombre: "Novela"}))

	assert.NoError(t, Editorial(model.Editorial{Nombre: "Planeta", Pais: "MX", Fundacion: "1980-01-01"}))
	assert.Error(t, Editorial(model.Editorial{Nombre: "Planeta", Pais: "MX"}))
}

func TestMaterial(t *testing.T) {
	assert.NoError(t, Material(model.Material{Titulo: "1984", EjemplaresTotal: 3}))
	assert.Error(t, Material(model.Material{}))
	assert.Error(t, Material(model.Material{Titulo: "1984", Paginas: -1}))
}

func TestPrestamo(t *testing.T) {
	ok := model.NuevoPrestamo{UsuarioID: "u", MaterialID: "m", FechaDevolucionEsperada: "2025-03-12"}
	assert.NoError(t, Prestamo(ok))

	assert.EqualError(t, Prestamo(model.NuevoPrestamo{MaterialID: "m", FechaDevolucionEsperada: "x"}), "usuario obligatorio")
	assert.EqualError(t, Prestamo(model.NuevoPrestamo{UsuarioID: "u", FechaDevolucionEsperada: "x"}), "material obligatorio")
	assert.EqualError(t, Prestamo(model.NuevoPrestamo{UsuarioID: "u", MaterialID: "m"}), "fecha obligatoria")
}
