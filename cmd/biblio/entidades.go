package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"biblio-cli/internal/api"
	"biblio-cli/internal/errs"
	"biblio-cli/internal/screen"
)

// entitySpec binds one catalog entity to the generic command quartet:
// list, show, add, edit and rm. The flags hook registers the form fields
// on a subcommand and returns an apply func copying only the flags the
// user actually set, so edits patch the prefilled draft instead of
// blanking it.
type entitySpec[T, D any] struct {
	use    string
	short  string
	res    func(*api.Client) screen.Resource[T, D]
	flags  func(c *cobra.Command) func(*D)
	header []string
	fila   func(T) []string
}

func newEntityCmd[T, D any](a *app, e entitySpec[T, D]) *cobra.Command {
	parent := &cobra.Command{
		Use:   e.use,
		Short: e.short,
	}
	parent.AddCommand(
		entityListCmd(a, e),
		entityShowCmd(a, e),
		entityAddCmd(a, e),
		entityEditCmd(a, e),
		entityRemoveCmd(a, e),
	)
	return parent
}

// loaded builds the screen controller and runs the initial fetch.
func loaded[T, D any](a *app, e entitySpec[T, D]) (*screen.Crud[T, D], func(), error) {
	if err := a.requireSession(); err != nil {
		return nil, nil, err
	}
	ctx, cancel := a.ctx()
	crud := screen.NewCrud(e.res(a.client), a.log)
	if err := crud.Load(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	return crud, cancel, nil
}

func entityListCmd[T, D any](a *app, e entitySpec[T, D]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar " + e.use,
		RunE: func(c *cobra.Command, _ []string) error {
			crud, done, err := loaded(a, e)
			if err != nil {
				return err
			}
			defer done()

			if a.asJSON {
				printJSON(c.OutOrStdout(), crud.Items())
				return nil
			}
			rows := make([][]string, 0, len(crud.Items()))
			for _, item := range crud.Items() {
				rows = append(rows, e.fila(item))
			}
			printTable(c.OutOrStdout(), e.header, rows)
			return nil
		},
	}
}

func entityShowCmd[T, D any](a *app, e entitySpec[T, D]) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Mostrar un registro",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			crud, done, err := loaded(a, e)
			if err != nil {
				return err
			}
			defer done()

			item, ok := crud.Get(args[0])
			if !ok {
				return fmt.Errorf("%q: %w", args[0], errs.ErrNotFound)
			}
			printJSON(c.OutOrStdout(), item)
			return nil
		},
	}
}

func entityAddCmd[T, D any](a *app, e entitySpec[T, D]) *cobra.Command {
	c := &cobra.Command{
		Use:   "add",
		Short: "Crear un registro",
	}
	apply := e.flags(c)
	c.RunE = func(c *cobra.Command, _ []string) error {
		crud, done, err := loaded(a, e)
		if err != nil {
			return err
		}
		defer done()

		crud.OpenCreate()
		draft, _ := crud.Draft()
		apply(&draft)
		if err := crud.SetDraft(draft); err != nil {
			return err
		}
		ctx, cancel := a.ctx()
		defer cancel()
		if err := crud.Submit(ctx); err != nil {
			return err
		}
		return printNotice(c, crud)
	}
	return c
}

func entityEditCmd[T, D any](a *app, e entitySpec[T, D]) *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <id>",
		Short: "Actualizar un registro",
		Args:  cobra.ExactArgs(1),
	}
	apply := e.flags(c)
	c.RunE = func(c *cobra.Command, args []string) error {
		crud, done, err := loaded(a, e)
		if err != nil {
			return err
		}
		defer done()

		if err := crud.OpenEdit(args[0]); err != nil {
			return err
		}
		draft, _ := crud.Draft()
		apply(&draft)
		if err := crud.SetDraft(draft); err != nil {
			return err
		}
		ctx, cancel := a.ctx()
		defer cancel()
		if err := crud.Submit(ctx); err != nil {
			return err
		}
		return printNotice(c, crud)
	}
	return c
}

func entityRemoveCmd[T, D any](a *app, e entitySpec[T, D]) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Eliminar un registro",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			crud, done, err := loaded(a, e)
			if err != nil {
				return err
			}
			defer done()

			ctx, cancel := a.ctx()
			defer cancel()
			if err := crud.Remove(ctx, args[0]); err != nil {
				return err
			}
			return printNotice(c, crud)
		},
	}
}

// printNotice surfaces the controller's last notification.
func printNotice[T, D any](c *cobra.Command, crud *screen.Crud[T, D]) error {
	if n, ok := crud.Notice(); ok {
		fmt.Fprintln(c.OutOrStdout(), n.Message)
	}
	return nil
}
