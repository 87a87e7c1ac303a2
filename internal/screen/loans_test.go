package screen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio-cli/internal/api"
	"biblio-cli/internal/loans"
	"biblio-cli/internal/model"
)

type fakeLoansAPI struct {
	prestamos  []model.Prestamo
	materiales []model.Material
	usuarios   []model.Usuario
	resumen    model.ResumenPrestamos

	prestamosErr error
	crearErr     error
	devolverErr  error
	multaErr     error

	listPrestamosCalls int
	listUsuariosCalls  int
	crearGot           model.NuevoPrestamo
	devolucionGot      model.Devolucion
	multaGot           model.AjusteMulta
	multaUsuarioGot    string
}

func (f *fakeLoansAPI) ListPrestamos(context.Context) ([]model.Prestamo, error) {
	f.listPrestamosCalls++
	if f.prestamosErr != nil {
		return nil, f.prestamosErr
	}
	return f.prestamos, nil
}

func (f *fakeLoansAPI) ListMateriales(context.Context) ([]model.Material, error) {
	return f.materiales, nil
}

func (f *fakeLoansAPI) ListUsuarios(context.Context) ([]model.Usuario, error) {
	f.listUsuariosCalls++
	return f.usuarios, nil
}

func (f *fakeLoansAPI) CrearPrestamo(_ context.Context, p model.NuevoPrestamo) error {
	f.crearGot = p
	return f.crearErr
}

func (f *fakeLoansAPI) RegistrarDevolucion(_ context.Context, d model.Devolucion) error {
	f.devolucionGot = d
	return f.devolverErr
}

func (f *fakeLoansAPI) AjustarMulta(_ context.Context, usuarioID string, a model.AjusteMulta) error {
	f.multaUsuarioGot = usuarioID
	f.multaGot = a
	return f.multaErr
}

func (f *fakeLoansAPI) ResumenPrestamos(context.Context, string) (model.ResumenPrestamos, error) {
	return f.resumen, nil
}

var wednesday = time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return wednesday }

func samplePrestamos() []model.Prestamo {
	return []model.Prestamo{
		{ID: "p1", ClavePrestamo: "PRE-001", UsuarioNombre: "Ana García", Estado: model.PrestamoActivo, FechaDevolucionEsperada: "2025-03-14T00:00:00Z"},
		{ID: "p2", ClavePrestamo: "PRE-002", UsuarioNombre: "Luis Pérez", Estado: model.PrestamoRetrasado, FechaDevolucionEsperada: "2025-03-01T00:00:00Z"},
		{ID: "p3", ClavePrestamo: "PRE-003", UsuarioNombre: "Ana García", Estado: model.PrestamoDevuelto, FechaDevolucionEsperada: "2025-02-20T00:00:00Z"},
	}
}

func TestPrestamos_LoadPopulatesAllLists(t *testing.T) {
	f := &fakeLoansAPI{
		prestamos:  samplePrestamos(),
		materiales: []model.Material{{ID: "m1", Titulo: "Ficciones"}},
		usuarios:   []model.Usuario{{ID: "u1", Apellido: "García"}},
	}
	s := NewPrestamos(f, nil, fixedNow)
	assert.True(t, s.Loading())

	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.Loading())
	assert.Len(t, s.Visible(), 3)
	assert.Len(t, s.Usuarios(), 1)
	assert.Len(t, s.BuscarMateriales(""), 1)
}

// A failed loan fetch must not blank the other lists.
func TestPrestamos_LoadPartialFailure(t *testing.T) {
	f := &fakeLoansAPI{
		prestamosErr: errors.New("boom"),
		materiales:   []model.Material{{ID: "m1", Titulo: "Ficciones"}},
		usuarios:     []model.Usuario{{ID: "u1", Apellido: "García"}},
	}
	s := NewPrestamos(f, nil, fixedNow)

	assert.Error(t, s.Load(context.Background()))
	assert.False(t, s.Loading())
	assert.Empty(t, s.Visible())
	assert.Len(t, s.Usuarios(), 1)
	assert.Len(t, s.BuscarMateriales(""), 1)

	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, Error, n.Severity)
	assert.Equal(t, "Error al cargar los préstamos", n.Message)
}

func TestPrestamos_PartitionAndFilter(t *testing.T) {
	f := &fakeLoansAPI{prestamos: samplePrestamos()}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	abiertos := s.Abiertos()
	require.Len(t, abiertos, 2)
	for _, p := range abiertos {
		assert.True(t, p.Abierto())
	}
	cerrados := s.Cerrados()
	require.Len(t, cerrados, 1)
	assert.Equal(t, "p3", cerrados[0].ID)

	s.SetFilter(loans.Filter{Usuario: "ana"})
	assert.Len(t, s.Visible(), 2)
	assert.Len(t, s.Abiertos(), 1)
	assert.Len(t, s.Cerrados(), 1)

	s.SetFilter(loans.Filter{Semana: true})
	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "p1", visible[0].ID)

	s.ClearFilter()
	assert.True(t, s.Filter().Vacio())
	assert.Len(t, s.Visible(), 3)
}

func TestPrestamos_BuscarUsuarios(t *testing.T) {
	f := &fakeLoansAPI{usuarios: []model.Usuario{
		{ID: "u1", Apellido: "García", Correo: "ana@uni.edu"},
		{ID: "u2", Apellido: "Pérez", Identificacion: "A0123"},
	}}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	assert.Nil(t, s.BuscarUsuarios("g"), "single-rune queries yield nothing")
	require.Len(t, s.BuscarUsuarios("garc"), 1)
	require.Len(t, s.BuscarUsuarios("0123"), 1)
	assert.Equal(t, "u2", s.BuscarUsuarios("0123")[0].ID)
}

func TestPrestamos_BuscarMateriales(t *testing.T) {
	f := &fakeLoansAPI{materiales: []model.Material{
		{ID: "m1", Titulo: "Ficciones", Autor: "Borges", Editorial: "Sur"},
		{ID: "m2", Titulo: "Rayuela", Autor: "Cortázar", Editorial: "Sudamericana"},
	}}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	assert.Len(t, s.BuscarMateriales(""), 2)
	require.Len(t, s.BuscarMateriales("borges"), 1)
	assert.Equal(t, "m1", s.BuscarMateriales("borges")[0].ID)
	require.Len(t, s.BuscarMateriales("sudam"), 1)
	assert.Equal(t, "m2", s.BuscarMateriales("sudam")[0].ID)
}

func TestPrestamos_CrearPrestamo(t *testing.T) {
	f := &fakeLoansAPI{}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))
	calls := f.listPrestamosCalls

	require.NoError(t, s.CrearPrestamo(context.Background(), "u1", "m1", "2025-03-20"))
	assert.Equal(t, "u1", f.crearGot.UsuarioID)
	assert.Equal(t, "m1", f.crearGot.MaterialID)
	assert.Equal(t, calls+1, f.listPrestamosCalls, "success refetches the loan list")

	n, _ := s.Notice()
	assert.Equal(t, "Préstamo registrado correctamente", n.Message)
}

func TestPrestamos_CrearPrestamoValidation(t *testing.T) {
	f := &fakeLoansAPI{}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	assert.Error(t, s.CrearPrestamo(context.Background(), "", "m1", "2025-03-20"))
	assert.Empty(t, f.crearGot.MaterialID, "nothing sent when validation fails")
}

func TestPrestamos_CrearPrestamoServerRejection(t *testing.T) {
	f := &fakeLoansAPI{crearErr: &api.APIError{Status: 400, Message: "No hay ejemplares disponibles"}}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	assert.Error(t, s.CrearPrestamo(context.Background(), "u1", "m1", "2025-03-20"))
	n, _ := s.Notice()
	assert.Equal(t, "No hay ejemplares disponibles", n.Message)
}

func TestPrestamos_RegistrarDevolucion(t *testing.T) {
	f := &fakeLoansAPI{prestamos: samplePrestamos()}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.RegistrarDevolucion(context.Background(), "p1", "sin daños"))
	assert.Equal(t, "p1", f.devolucionGot.PrestamoID)
	assert.Equal(t, "sin daños", f.devolucionGot.Observaciones)

	n, _ := s.Notice()
	assert.Equal(t, "Devolución registrada correctamente", n.Message)
}

// A loan already returned must never accept another return.
func TestPrestamos_RegistrarDevolucionRejectsClosed(t *testing.T) {
	f := &fakeLoansAPI{prestamos: samplePrestamos()}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	err := s.RegistrarDevolucion(context.Background(), "p3", "")
	assert.Error(t, err)
	assert.Empty(t, f.devolucionGot.PrestamoID, "no request reaches the server")
	n, _ := s.Notice()
	assert.Equal(t, "el préstamo PRE-003 no está activo", n.Message)
}

func TestPrestamos_AjustarMulta(t *testing.T) {
	f := &fakeLoansAPI{usuarios: []model.Usuario{{ID: "u1", MultaAcumulada: 50}}}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))
	usuariosCalls := f.listUsuariosCalls

	s.SetMulta(MultaForm{UsuarioID: "u1", Accion: model.MultaPagar, Monto: 50})
	require.NoError(t, s.AjustarMulta(context.Background()))

	assert.Equal(t, "u1", f.multaUsuarioGot)
	assert.Equal(t, model.MultaPagar, f.multaGot.Accion)
	assert.Equal(t, 50.0, f.multaGot.Monto)
	assert.Equal(t, "Ajuste realizado por bibliotecario", f.multaGot.Observaciones)
	assert.Equal(t, usuariosCalls+1, f.listUsuariosCalls, "success refetches patrons")
	assert.Equal(t, MultaForm{}, s.Multa(), "form resets after success")

	n, _ := s.Notice()
	assert.Equal(t, "Multa ajustada correctamente", n.Message)
}

func TestPrestamos_AjustarMultaInvalidForm(t *testing.T) {
	f := &fakeLoansAPI{}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	s.SetMulta(MultaForm{Accion: model.MultaPagar})
	assert.Error(t, s.AjustarMulta(context.Background()), "missing patron")

	s.SetMulta(MultaForm{UsuarioID: "u1", Accion: "condonar"})
	assert.Error(t, s.AjustarMulta(context.Background()), "unknown action")
	assert.Empty(t, f.multaUsuarioGot)
}

func TestPrestamos_AjustarMultaFailureKeepsForm(t *testing.T) {
	f := &fakeLoansAPI{multaErr: &api.APIError{Status: 400, Message: "El monto excede la multa"}}
	s := NewPrestamos(f, nil, fixedNow)
	require.NoError(t, s.Load(context.Background()))

	form := MultaForm{UsuarioID: "u1", Accion: model.MultaAjustar, Monto: 999}
	s.SetMulta(form)
	assert.Error(t, s.AjustarMulta(context.Background()))
	assert.Equal(t, form, s.Multa(), "form survives a server rejection")
	n, _ := s.Notice()
	assert.Equal(t, "El monto excede la multa", n.Message)
}

func TestPrestamos_Resumen(t *testing.T) {
	f := &fakeLoansAPI{resumen: model.ResumenPrestamos{
		Activos: []model.Prestamo{{ID: "p1"}},
		Adeudo:  25,
	}}
	s := NewPrestamos(f, nil, fixedNow)

	r, err := s.Resumen(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, r.Activos, 1)
	assert.Equal(t, 25.0, r.Adeudo)
}
