// Package validate implements the client-side field checks applied before
// submitting a form. The server remains authoritative; these only reject
// what a form can reject early.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"biblio-cli/internal/model"
)

var (
	reCorreo  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]+$`)
	reDigitos = regexp.MustCompile(`^[0-9]+$`)
)

func required(campo, valor string) error {
	if strings.TrimSpace(valor) == "" {
		return fmt.Errorf("%s es requerido", campo)
	}
	return nil
}

// Correo checks the email shape the registration form enforces.
func Correo(s string) bool { return reCorreo.MatchString(s) }

// Telefono requires exactly ten digits.
func Telefono(s string) bool { return len(s) == 10 && reDigitos.MatchString(s) }

// FechaISO accepts a bare "YYYY-MM-DD" calendar day.
func FechaISO(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Registro validates the patron form. The password is only required on
// create; the edit form omits it.
func Registro(r model.Registro, nuevo bool) error {
	for _, check := range []struct{ campo, valor string }{
		{"nombre", r.Nombre},
		{"apellido", r.Apellido},
		{"identificacion", r.Identificacion},
		{"correo", r.Correo},
		{"telefono", r.Telefono},
	} {
		if err := required(check.campo, check.valor); err != nil {
			return err
		}
	}
	if !Correo(r.Correo) {
		return errors.New("correo electrónico no válido")
	}
	if !Telefono(r.Telefono) {
		return errors.New("el teléfono debe tener 10 dígitos")
	}
	if nuevo {
		if err := required("clave", r.Clave); err != nil {
			return err
		}
		if len(r.Clave) < 4 {
			return errors.New("la clave debe tener al menos 4 caracteres")
		}
	}
	return nil
}

// Autor validates the author form; all three fields were required.
func Autor(a model.Autor) error {
	for _, check := range []struct{ campo, valor string }{
		{"nombre", a.Nombre},
		{"biografia", a.Biografia},
		{"foto", a.Foto},
	} {
		if err := required(check.campo, check.valor); err != nil {
			return err
		}
	}
	return nil
}

// Categoria validates the category form.
func Categoria(c model.Categoria) error {
	if err := required("nombre", c.Nombre); err != nil {
		return err
	}
	return required("descripcion", c.Descripcion)
}

// Editorial validates the publisher form.
func Editorial(e model.Editorial) error {
	for _, check := range []struct{ campo, valor string }{
		{"nombre", e.Nombre},
		{"pais", e.Pais},
		{"fundacion", e.Fundacion},
	} {
		if err := required(check.campo, check.valor); err != nil {
			return err
		}
	}
	return nil
}

// Material validates the material form. The copy-count invariant
// (disponibles <= total) is the server's to enforce, not ours.
func Material(m model.Material) error {
	if err := required("titulo", m.Titulo); err != nil {
		return err
	}
	if m.EjemplaresTotal < 0 || m.EjemplaresDisponibles < 0 || m.Paginas < 0 {
		return errors.New("los números no pueden ser negativos")
	}
	return nil
}

// Prestamo validates the new-loan form: patron, material and expected
// return date are all mandatory.
func Prestamo(p model.NuevoPrestamo) error {
	if p.UsuarioID == "" {
		return errors.New("usuario obligatorio")
	}
	if p.MaterialID == "" {
		return errors.New("material obligatorio")
	}
	if p.FechaDevolucionEsperada == "" {
		return errors.New("fecha obligatoria")
	}
	return nil
}
