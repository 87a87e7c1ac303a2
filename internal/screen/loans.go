package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"biblio-cli/internal/loans"
	"biblio-cli/internal/model"
	"biblio-cli/internal/validate"
)

// PrestamosAPI is the slice of the API client the loan screen consumes.
type PrestamosAPI interface {
	ListPrestamos(ctx context.Context) ([]model.Prestamo, error)
	ListMateriales(ctx context.Context) ([]model.Material, error)
	ListUsuarios(ctx context.Context) ([]model.Usuario, error)
	CrearPrestamo(ctx context.Context, p model.NuevoPrestamo) error
	RegistrarDevolucion(ctx context.Context, d model.Devolucion) error
	AjustarMulta(ctx context.Context, usuarioID string, a model.AjusteMulta) error
	ResumenPrestamos(ctx context.Context, usuarioID string) (model.ResumenPrestamos, error)
}

// observacionAjuste is the fixed note sent with every fine adjustment.
const observacionAjuste = "Ajuste realizado por bibliotecario"

// MultaForm is the fine-adjustment form state. It is independent of any
// single loan: the librarian searches a patron, then applies a payment or
// a manual correction.
type MultaForm struct {
	UsuarioID string
	Accion    string // model.MultaPagar | model.MultaAjustar
	Monto     float64
}

// Prestamos is the loan screen: loans plus the patron and material lists
// its pickers need, the client-side filter, and the fine form.
type Prestamos struct {
	api PrestamosAPI
	log *zap.Logger
	now func() time.Time

	prestamos  []model.Prestamo
	materiales []model.Material
	usuarios   []model.Usuario

	filter  loans.Filter
	multa   MultaForm
	loading bool
	notice  *Notice
}

func NewPrestamos(api PrestamosAPI, log *zap.Logger, now func() time.Time) *Prestamos {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Prestamos{api: api, log: log, now: now, loading: true}
}

// Load issues the three list fetches in parallel and marks the screen
// ready once all have settled. A failed fetch leaves its list empty and
// surfaces a notice; the other lists still populate.
func (s *Prestamos) Load(ctx context.Context) error {
	var (
		wg               sync.WaitGroup
		errP, errM, errU error
		dataP            []model.Prestamo
		dataM            []model.Material
		dataU            []model.Usuario
	)
	wg.Add(3)
	go func() { defer wg.Done(); dataP, errP = s.api.ListPrestamos(ctx) }()
	go func() { defer wg.Done(); dataM, errM = s.api.ListMateriales(ctx) }()
	go func() { defer wg.Done(); dataU, errU = s.api.ListUsuarios(ctx) }()
	wg.Wait()

	s.prestamos, s.materiales, s.usuarios = dataP, dataM, dataU
	s.loading = false

	if err := errors.Join(errP, errM, errU); err != nil {
		s.log.Warn("loan screen load", zap.Error(err))
		s.notify(Error, "Error al cargar los préstamos")
		return err
	}
	return nil
}

func (s *Prestamos) Loading() bool { return s.loading }

// Filter returns the current filter state.
func (s *Prestamos) Filter() loans.Filter { return s.filter }

// SetFilter replaces the filter; the visible lists are recomputed on read.
func (s *Prestamos) SetFilter(f loans.Filter) { s.filter = f }

// ClearFilter resets every criterion (the "Limpiar" button).
func (s *Prestamos) ClearFilter() { s.filter = loans.Filter{} }

// Visible returns the loans passing the current filter.
func (s *Prestamos) Visible() []model.Prestamo {
	return loans.Filtrar(s.prestamos, s.filter, s.now())
}

// Abiertos returns the filtered loans for the active/overdue table.
func (s *Prestamos) Abiertos() []model.Prestamo {
	abiertos, _ := loans.Partition(s.Visible())
	return abiertos
}

// Cerrados returns the filtered loans for the returned/lost table. Rows
// here never carry a return action.
func (s *Prestamos) Cerrados() []model.Prestamo {
	_, cerrados := loans.Partition(s.Visible())
	return cerrados
}

// Usuarios returns the fetched patron list.
func (s *Prestamos) Usuarios() []model.Usuario { return s.usuarios }

// BuscarUsuarios is the patron type-ahead backing both the new-loan
// picker and the fine form.
func (s *Prestamos) BuscarUsuarios(query string) []model.Usuario {
	return loans.SearchUsuarios(s.usuarios, query)
}

// BuscarMateriales filters the material picker by a free-text substring
// over title, author, edition and publisher.
func (s *Prestamos) BuscarMateriales(query string) []model.Material {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.materiales
	}
	var out []model.Material
	for _, m := range s.materiales {
		etiqueta := strings.ToLower(m.Titulo + " " + m.Autor + " " + m.Edicion + " " + m.Editorial)
		if strings.Contains(etiqueta, q) {
			out = append(out, m)
		}
	}
	return out
}

// CrearPrestamo submits a new loan and refetches the loan list on
// success. Server rejections (no copies, suspended patron) surface their
// message verbatim.
func (s *Prestamos) CrearPrestamo(ctx context.Context, usuarioID, materialID, fechaEsperada string) error {
	p := model.NuevoPrestamo{
		UsuarioID:               usuarioID,
		MaterialID:              materialID,
		FechaDevolucionEsperada: fechaEsperada,
	}
	if err := validate.Prestamo(p); err != nil {
		s.notify(Error, err.Error())
		return err
	}
	if err := s.api.CrearPrestamo(ctx, p); err != nil {
		s.notify(Error, errMessage(err, "Error al crear el préstamo"))
		return err
	}
	s.notify(Success, "Préstamo registrado correctamente")
	return s.refetchPrestamos(ctx)
}

// RegistrarDevolucion registers a return for a loan that is still open
// (activo or retrasado) and refetches on success.
func (s *Prestamos) RegistrarDevolucion(ctx context.Context, prestamoID, observaciones string) error {
	for _, p := range s.prestamos {
		if p.ID == prestamoID && !p.Abierto() {
			err := fmt.Errorf("el préstamo %s no está activo", p.ClavePrestamo)
			s.notify(Error, err.Error())
			return err
		}
	}
	d := model.Devolucion{PrestamoID: prestamoID, Observaciones: observaciones}
	if err := s.api.RegistrarDevolucion(ctx, d); err != nil {
		s.notify(Error, errMessage(err, "Error al registrar la devolución"))
		return err
	}
	s.notify(Success, "Devolución registrada correctamente")
	return s.refetchPrestamos(ctx)
}

// Multa returns the fine form state.
func (s *Prestamos) Multa() MultaForm { return s.multa }

// SetMulta fills the fine form.
func (s *Prestamos) SetMulta(f MultaForm) { s.multa = f }

// AjustarMulta applies the fine form to its patron, refetches the patron
// list and resets the form on success.
func (s *Prestamos) AjustarMulta(ctx context.Context) error {
	if s.multa.UsuarioID == "" {
		err := errors.New("seleccione un usuario")
		s.notify(Error, err.Error())
		return err
	}
	if s.multa.Accion != model.MultaPagar && s.multa.Accion != model.MultaAjustar {
		err := fmt.Errorf("acción desconocida: %q", s.multa.Accion)
		s.notify(Error, err.Error())
		return err
	}
	ajuste := model.AjusteMulta{
		Accion:        s.multa.Accion,
		Monto:         s.multa.Monto,
		Observaciones: observacionAjuste,
	}
	if err := s.api.AjustarMulta(ctx, s.multa.UsuarioID, ajuste); err != nil {
		s.notify(Error, errMessage(err, "Error al ajustar la multa"))
		return err
	}

	usuarios, err := s.api.ListUsuarios(ctx)
	if err != nil {
		s.notify(Error, "Error al cargar los usuarios")
		return err
	}
	s.usuarios = usuarios
	s.multa = MultaForm{}
	s.notify(Success, "Multa ajustada correctamente")
	return nil
}

// Resumen fetches the per-patron loan summary (active, history, total
// owed).
func (s *Prestamos) Resumen(ctx context.Context, usuarioID string) (model.ResumenPrestamos, error) {
	return s.api.ResumenPrestamos(ctx, usuarioID)
}

// Notice returns the last notification, if any.
func (s *Prestamos) Notice() (Notice, bool) {
	if s.notice == nil {
		return Notice{}, false
	}
	return *s.notice, true
}

func (s *Prestamos) notify(sev Severity, msg string) {
	s.notice = &Notice{Severity: sev, Message: msg}
}

func (s *Prestamos) refetchPrestamos(ctx context.Context) error {
	prestamos, err := s.api.ListPrestamos(ctx)
	if err != nil {
		s.notify(Error, "Error al cargar los préstamos")
		return err
	}
	s.prestamos = prestamos
	return nil
}
