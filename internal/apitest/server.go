// Package apitest runs an in-memory stand-in for the library API. Client
// and command tests point a real HTTP client at it instead of mocking
// transport internals.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"biblio-cli/internal/model"
)

// Server holds the fake API state. Seed the maps before issuing requests;
// handlers mutate them the way the real server would.
type Server struct {
	*httptest.Server

	mu  sync.Mutex
	seq int

	// Credenciales maps correo to clave for POST /api/auth.
	Credenciales map[string]string
	// TokenFor mints the token returned on successful auth. Defaults to
	// "token-" + correo.
	TokenFor func(correo string) string

	Materiales  map[string]model.Material
	Autores     map[string]model.Autor
	Categorias  map[string]model.Categoria
	Editoriales map[string]model.Editorial
	Usuarios    map[string]model.Usuario
	Prestamos   map[string]model.Prestamo
	Resumenes   map[string]model.ResumenPrestamos
}

func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		Credenciales: map[string]string{},
		TokenFor:     func(correo string) string { return "token-" + correo },
		Materiales:   map[string]model.Material{},
		Autores:      map[string]model.Autor{},
		Categorias:   map[string]model.Categoria{},
		Editoriales:  map[string]model.Editorial{},
		Usuarios:     map[string]model.Usuario{},
		Prestamos:    map[string]model.Prestamo{},
		Resumenes:    map[string]model.ResumenPrestamos{},
	}

	r := chi.NewRouter()
	r.Post("/api/auth", s.auth)

	mount(s, r, "/api/materiales", s.Materiales,
		func(m *model.Material) *string { return &m.ID })
	mount(s, r, "/api/autores", s.Autores,
		func(a *model.Autor) *string { return &a.ID })
	mount(s, r, "/api/categorias", s.Categorias,
		func(c *model.Categoria) *string { return &c.ID })
	mount(s, r, "/api/editoriales", s.Editoriales,
		func(e *model.Editorial) *string { return &e.ID })

	r.Get("/api/usuarios", s.listUsuarios)
	r.Post("/api/usuarios", s.createUsuario)
	r.Put("/api/usuarios/{id}", s.updateUsuario)
	r.Delete("/api/usuarios/{id}", s.deleteUsuario)
	r.Put("/api/usuarios/{id}/multa", s.ajustarMulta)

	r.Get("/api/prestamos", s.listPrestamos)
	r.Post("/api/prestamos", s.crearPrestamo)
	r.Post("/api/prestamos/devolucion", s.devolucion)
	r.Get("/api/mis-prestamos/{id}", s.resumen)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Server.Close)
	return s
}

func (s *Server) nextID() string {
	s.seq++
	return "id-" + strconv.Itoa(s.seq)
}

func (s *Server) auth(w http.ResponseWriter, r *http.Request) {
	var cred model.Credenciales
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		fail(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.mu.Lock()
	clave, ok := s.Credenciales[cred.Correo]
	s.mu.Unlock()
	if !ok || clave != cred.Clave {
		fail(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": s.TokenFor(cred.Correo)})
}

// mount registers the list/create/update/delete quartet for one catalog
// entity backed by an id-keyed map.
func mount[T any](s *Server, r chi.Router, path string, items map[string]T, id func(*T) *string) {
	r.Get(path, func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		out := sortedValues(items, id)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	})
	r.Post(path, func(w http.ResponseWriter, r *http.Request) {
		var v T
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			fail(w, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		s.mu.Lock()
		*id(&v) = s.nextID()
		items[*id(&v)] = v
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, v)
	})
	r.Put(path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "id")
		var v T
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			fail(w, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := items[key]; !ok {
			fail(w, http.StatusNotFound, "No encontrado")
			return
		}
		*id(&v) = key
		items[key] = v
		writeJSON(w, http.StatusOK, v)
	})
	r.Delete(path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "id")
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := items[key]; !ok {
			fail(w, http.StatusNotFound, "No encontrado")
			return
		}
		delete(items, key)
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) listUsuarios(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := sortedValues(s.Usuarios, func(u *model.Usuario) *string { return &u.ID })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createUsuario(w http.ResponseWriter, r *http.Request) {
	var reg model.Registro
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		fail(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Usuarios {
		if u.Correo == reg.Correo {
			fail(w, http.StatusConflict, "El correo ya está registrado")
			return
		}
	}
	u := model.Usuario{
		ID:             s.nextID(),
		Nombre:         reg.Nombre,
		Apellido:       reg.Apellido,
		Identificacion: reg.Identificacion,
		Correo:         reg.Correo,
		Telefono:       reg.Telefono,
		Estado:         "activo",
	}
	s.Usuarios[u.ID] = u
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUsuario(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	var reg model.Registro
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		fail(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Usuarios[key]
	if !ok {
		fail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	u.Nombre = reg.Nombre
	u.Apellido = reg.Apellido
	u.Identificacion = reg.Identificacion
	u.Correo = reg.Correo
	u.Telefono = reg.Telefono
	s.Usuarios[key] = u
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUsuario(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Usuarios[key]; !ok {
		fail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	delete(s.Usuarios, key)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ajustarMulta(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	var a model.AjusteMulta
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		fail(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Usuarios[key]
	if !ok {
		fail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	switch a.Accion {
	case model.MultaPagar:
		u.MultaAcumulada -= a.Monto
		if u.MultaAcumulada < 0 {
			u.MultaAcumulada = 0
		}
	case model.MultaAjustar:
		u.MultaAcumulada = a.Monto
	default:
		fail(w, http.StatusBadRequest, "Acción desconocida")
		return
	}
	s.Usuarios[key] = u
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listPrestamos(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := sortedValues(s.Prestamos, func(p *model.Prestamo) *string { return &p.ID })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) crearPrestamo(w http.ResponseWriter, r *http.Request) {
	var np model.NuevoPrestamo
	if err := json.NewDecoder(r.Body).Decode(&np); err != nil {
		fail(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Usuarios[np.UsuarioID]
	if !ok {
		fail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	m, ok := s.Materiales[np.MaterialID]
	if !ok {
		fail(w, http.StatusNotFound, "Material no encontrado")
		return
	}
	if m.EjemplaresDisponibles <= 0 {
		fail(w, http.StatusBadRequest, "No hay ejemplares disponibles")
		return
	}
	m.EjemplaresDisponibles--
	s.Materiales[m.ID] = m

	p := model.Prestamo{
		ID:                      s.nextID(),
		ClavePrestamo:           "PRE-" + strconv.Itoa(s.seq),
		UsuarioNombre:           u.NombreCompleto(),
		MaterialTitulo:          m.Titulo,
		MaterialTipo:            m.Tipo,
		FechaDevolucionEsperada: np.FechaDevolucionEsperada,
		Estado:                  model.PrestamoActivo,
	}
	s.Prestamos[p.ID] = p
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) devolucion(w http.ResponseWriter, r *http.Request) {
	var d model.Devolucion
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		fail(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Prestamos[d.PrestamoID]
	if !ok {
		fail(w, http.StatusNotFound, "Préstamo no encontrado")
		return
	}
	if !p.Abierto() {
		fail(w, http.StatusBadRequest, "El préstamo no está activo")
		return
	}
	p.Estado = model.PrestamoDevuelto
	s.Prestamos[p.ID] = p
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) resumen(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	s.mu.Lock()
	res := s.Resumenes[key]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func sortedValues[T any](items map[string]T, id func(*T) *string) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return *id(&out[i]) < *id(&out[j]) })
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
