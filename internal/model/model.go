// Package model defines the wire-format records exchanged with the library API.
//
// JSON tags follow the server's vocabulary verbatim (Spanish field names,
// Mongo-style "_id"); this layer does not own entity lifecycles, it only
// mirrors what the API returns.
package model

// Material statuses as reported by the server.
const (
	MaterialDisponible = "disponible"
	MaterialPrestado   = "prestado"
	MaterialReparacion = "reparacion"
	MaterialPerdido    = "perdido"
)

// Loan statuses. "activo" and "retrasado" are the open states; the
// active/overdue classification itself is computed server-side and only
// consumed here.
const (
	PrestamoActivo    = "activo"
	PrestamoRetrasado = "retrasado"
	PrestamoDevuelto  = "devuelto"
	PrestamoPerdido   = "perdido"
)

// Material is a catalog item (book or periodical) with copy tracking.
type Material struct {
	ID                    string `json:"_id"`
	Tipo                  string `json:"tipo"`
	Titulo                string `json:"titulo"`
	Autor                 string `json:"autor"`
	Codigo                string `json:"codigo"`
	Categoria             string `json:"categoria"`
	EjemplaresTotal       int    `json:"ejemplaresTotal"`
	EjemplaresDisponibles int    `json:"ejemplaresDisponibles"`
	FechaPublicacion      string `json:"fechaPublicacion"`
	Editorial             string `json:"editorial"`
	Ubicacion             string `json:"ubicacion"`
	Estado                string `json:"estado"`
	ImagenPortada         string `json:"imagenPortada"`
	Edicion               string `json:"edicion"`
	Paginas               int    `json:"paginas"`
}

// Usuario is a registered patron who can hold loans and accrue fines.
type Usuario struct {
	ID               string  `json:"_id"`
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	Identificacion   string  `json:"identificacion"`
	Correo           string  `json:"correo"`
	Telefono         string  `json:"telefono"`
	PrestamosActivos int     `json:"prestamosActivos"`
	Estado           string  `json:"estado"`
	MultaAcumulada   float64 `json:"multaAcumulada"`
	FechaRegistro    string  `json:"fechaRegistro"`
}

// NombreCompleto is the display name used in pickers and tables.
func (u Usuario) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}

// Prestamo binds one patron to one material for a bounded period.
// FechaDevolucionEsperada stays a raw string: the server emits RFC 3339
// but the value is treated as opaque until a date filter needs it.
type Prestamo struct {
	ID                      string `json:"_id"`
	ClavePrestamo           string `json:"clavePrestamo"`
	UsuarioNombre           string `json:"usuarioNombre"`
	MaterialTitulo          string `json:"materialTitulo"`
	MaterialTipo            string `json:"materialTipo"`
	FechaPrestamo           string `json:"fechaPrestamo"`
	FechaDevolucionEsperada string `json:"fechaDevolucionEsperada"`
	Estado                  string `json:"estado"`
}

// Abierto reports whether the loan still awaits a return.
func (p Prestamo) Abierto() bool {
	return p.Estado == PrestamoActivo || p.Estado == PrestamoRetrasado
}

// Autor is a catalog author.
type Autor struct {
	ID        string `json:"_id"`
	Nombre    string `json:"nombre"`
	Biografia string `json:"biografia"`
	Foto      string `json:"foto"`
}

// Categoria is a catalog category.
type Categoria struct {
	ID          string `json:"_id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// Editorial is a publisher.
type Editorial struct {
	ID        string `json:"_id"`
	Nombre    string `json:"nombre"`
	Pais      string `json:"pais"`
	Fundacion string `json:"fundacion"`
}

// ResumenPrestamos is the per-patron summary returned by /api/mis-prestamos.
type ResumenPrestamos struct {
	Activos   []Prestamo `json:"activos"`
	Historial []Prestamo `json:"historial"`
	Adeudo    float64    `json:"adeudo"`
}

// NuevoPrestamo is the create-loan request body.
type NuevoPrestamo struct {
	UsuarioID               string `json:"usuarioId"`
	MaterialID              string `json:"materialId"`
	FechaDevolucionEsperada string `json:"fechaDevolucionEsperada"`
}

// Devolucion is the register-return request body.
type Devolucion struct {
	PrestamoID    string `json:"prestamoId"`
	Observaciones string `json:"observaciones"`
}

// Fine adjustment actions accepted by PUT /api/usuarios/{id}/multa.
const (
	MultaPagar   = "pagar"
	MultaAjustar = "ajustar"
)

// AjusteMulta is the fine-adjustment request body.
type AjusteMulta struct {
	Accion        string  `json:"accion"`
	Monto         float64 `json:"monto"`
	Observaciones string  `json:"observaciones"`
}

// Registro is the self-registration / create-patron request body.
type Registro struct {
	Nombre         string `json:"nombre"`
	Apellido       string `json:"apellido"`
	Identificacion string `json:"identificacion"`
	Correo         string `json:"correo"`
	Telefono       string `json:"telefono"`
	Clave          string `json:"clave"`
}

// Credenciales is the POST /api/auth request body.
type Credenciales struct {
	Correo string `json:"correo"`
	Clave  string `json:"clave"`
}
