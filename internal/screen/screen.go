// Package screen contains the screen controllers: per-screen state and
// transitions, with no rendering. Controllers are not safe for concurrent
// use; every mutation happens from the calling user action.
package screen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"biblio-cli/internal/errs"
)

// Severity of a notice.
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

// Notice is the last user-facing notification.
type Notice struct {
	Severity Severity
	Message  string
}

// Resource wires one entity into the generic CRUD screen: its endpoints,
// id accessor and client-side validation. T is the listed record, D the
// form draft; they differ only where the form omits server-owned fields
// (patrons). One configuration per entity.
type Resource[T, D any] struct {
	// Nombre and Plural name the entity in notices ("autor", "autores").
	// Femenino picks the participle ending ("creada" vs "creado").
	Nombre   string
	Plural   string
	Femenino bool

	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, draft D) error
	Update func(ctx context.Context, id string, draft D) error
	Delete func(ctx context.Context, id string) error

	// ID extracts the record id used for edits and deletes.
	ID func(item T) string
	// ToDraft pre-fills the edit form from a held record.
	ToDraft func(item T) D
	// Validate runs before submit; nuevo is true for the create form.
	// Nil means no client-side validation.
	Validate func(draft D, nuevo bool) error
}

type dialog[D any] struct {
	draft  D
	editID string // "" while creating
}

// Crud is the generic list-and-form screen:
// Idle(loading) -> Loaded(list) <-> DialogOpen(draft).
type Crud[T, D any] struct {
	res Resource[T, D]
	log *zap.Logger

	items   []T
	loading bool
	dialog  *dialog[D]
	notice  *Notice
}

func NewCrud[T, D any](res Resource[T, D], log *zap.Logger) *Crud[T, D] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Crud[T, D]{res: res, log: log, loading: true}
}

// Load fetches the collection and replaces the held list wholesale. On
// failure the list stays empty, a notice is surfaced and loading clears.
func (c *Crud[T, D]) Load(ctx context.Context) error {
	items, err := c.res.List(ctx)
	c.loading = false
	if err != nil {
		c.items = nil
		c.log.Warn("load failed", zap.String("entity", c.res.Plural), zap.Error(err))
		c.notify(Error, c.loadErrMsg())
		return err
	}
	c.items = items
	return nil
}

// Items returns the held list.
func (c *Crud[T, D]) Items() []T { return c.items }

// Loading reports whether the initial fetch is still pending.
func (c *Crud[T, D]) Loading() bool { return c.loading }

// DialogOpen reports whether the form dialog is open.
func (c *Crud[T, D]) DialogOpen() bool { return c.dialog != nil }

// Editing returns the id being edited, or "" for a create dialog.
func (c *Crud[T, D]) Editing() string {
	if c.dialog == nil {
		return ""
	}
	return c.dialog.editID
}

// Draft returns the current form draft.
func (c *Crud[T, D]) Draft() (D, bool) {
	if c.dialog == nil {
		var zero D
		return zero, false
	}
	return c.dialog.draft, true
}

// Get returns the held record with the given id (the details view).
func (c *Crud[T, D]) Get(id string) (T, bool) {
	for _, item := range c.items {
		if c.res.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// OpenCreate opens the dialog with a blank draft.
func (c *Crud[T, D]) OpenCreate() {
	c.dialog = &dialog[D]{}
}

// OpenEdit opens the dialog pre-filled from the held list entry with the
// given id. There is no fetch-by-id; an unknown id is an error.
func (c *Crud[T, D]) OpenEdit(id string) error {
	item, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("%s %q: %w", c.res.Nombre, id, errs.ErrNotFound)
	}
	c.dialog = &dialog[D]{draft: c.res.ToDraft(item), editID: id}
	return nil
}

// SetDraft replaces the form draft.
func (c *Crud[T, D]) SetDraft(draft D) error {
	if c.dialog == nil {
		return errs.ErrNoDialog
	}
	c.dialog.draft = draft
	return nil
}

// Close discards the dialog without submitting.
func (c *Crud[T, D]) Close() { c.dialog = nil }

// Submit validates the draft and sends a create or update. On success the
// whole list is refetched (no optimistic merge) and the dialog closes; on
// failure a notice is surfaced and the dialog stays open.
func (c *Crud[T, D]) Submit(ctx context.Context) error {
	if c.dialog == nil {
		return errs.ErrNoDialog
	}
	nuevo := c.dialog.editID == ""

	if c.res.Validate != nil {
		if err := c.res.Validate(c.dialog.draft, nuevo); err != nil {
			c.notify(Error, err.Error())
			return fmt.Errorf("%w: %s", errs.ErrValidation, err)
		}
	}

	var err error
	if nuevo {
		err = c.res.Create(ctx, c.dialog.draft)
	} else {
		err = c.res.Update(ctx, c.dialog.editID, c.dialog.draft)
	}
	if err != nil {
		c.notify(Error, errMessage(err, "Error al realizar la operación"))
		return err
	}

	items, err := c.res.List(ctx)
	if err != nil {
		c.notify(Error, c.loadErrMsg())
		return err
	}
	c.items = items

	if nuevo {
		c.notify(Success, c.entityMsg("cread"))
	} else {
		c.notify(Success, c.entityMsg("actualizad"))
	}
	c.dialog = nil
	return nil
}

func (c *Crud[T, D]) loadErrMsg() string {
	articulo := "los"
	if c.res.Femenino {
		articulo = "las"
	}
	return "Error al cargar " + articulo + " " + c.res.Plural
}

// entityMsg builds "Autor creado correctamente" / "Categoría creada
// correctamente" from a participle stem.
func (c *Crud[T, D]) entityMsg(stem string) string {
	suffix := "o"
	if c.res.Femenino {
		suffix = "a"
	}
	return capitalizeFirst(c.res.Nombre) + " " + stem + suffix + " correctamente"
}

// Remove deletes one record. On success the entry is dropped from the
// held list without a refetch; on failure only a notice is surfaced.
func (c *Crud[T, D]) Remove(ctx context.Context, id string) error {
	if err := c.res.Delete(ctx, id); err != nil {
		c.notify(Error, errMessage(err, "Error al eliminar"))
		return err
	}
	kept := c.items[:0:0]
	for _, item := range c.items {
		if c.res.ID(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.notify(Success, c.entityMsg("eliminad"))
	return nil
}

// Notice returns the last notification, if any.
func (c *Crud[T, D]) Notice() (Notice, bool) {
	if c.notice == nil {
		return Notice{}, false
	}
	return *c.notice, true
}

func (c *Crud[T, D]) notify(sev Severity, msg string) {
	c.notice = &Notice{Severity: sev, Message: msg}
}
