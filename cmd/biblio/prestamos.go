package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"biblio-cli/internal/loans"
	"biblio-cli/internal/model"
	"biblio-cli/internal/screen"
)

func newPrestamosCmd(a *app) *cobra.Command {
	parent := &cobra.Command{
		Use:   "prestamos",
		Short: "Gestión de préstamos y multas",
	}
	parent.AddCommand(
		prestamosListCmd(a),
		prestamosCrearCmd(a),
		prestamosDevolverCmd(a),
		prestamosMultaCmd(a),
		prestamosResumenCmd(a),
		prestamosBuscarUsuariosCmd(a),
		prestamosBuscarMaterialesCmd(a),
	)
	return parent
}

// loadedPrestamos wires the loan screen controller and runs its parallel
// initial fetch.
func loadedPrestamos(a *app) (*screen.Prestamos, func(), error) {
	if err := a.requireSession(); err != nil {
		return nil, nil, err
	}
	ctx, cancel := a.ctx()
	s := screen.NewPrestamos(a.client, a.log, time.Now)
	if err := s.Load(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	return s, cancel, nil
}

func prestamosListCmd(a *app) *cobra.Command {
	var filter loans.Filter
	var cerrados bool

	c := &cobra.Command{
		Use:   "list",
		Short: "Listar préstamos con filtros",
		RunE: func(c *cobra.Command, _ []string) error {
			s, done, err := loadedPrestamos(a)
			if err != nil {
				return err
			}
			defer done()
			s.SetFilter(filter)

			if a.asJSON {
				printJSON(c.OutOrStdout(), s.Visible())
				return nil
			}
			if cerrados {
				printTable(c.OutOrStdout(), prestamoHeader, prestamoRows(s.Cerrados()))
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), "Préstamos abiertos:")
			printTable(c.OutOrStdout(), prestamoHeader, prestamoRows(s.Abiertos()))
			fmt.Fprintln(c.OutOrStdout(), "\nPréstamos cerrados:")
			printTable(c.OutOrStdout(), prestamoHeader, prestamoRows(s.Cerrados()))
			return nil
		},
	}
	c.Flags().StringVar(&filter.Clave, "clave", "", "filtrar por clave de préstamo")
	c.Flags().StringVar(&filter.Usuario, "usuario", "", "filtrar por nombre de usuario")
	c.Flags().StringVar(&filter.Fecha, "fecha", "", "filtrar por fecha de devolución (YYYY-MM-DD)")
	c.Flags().BoolVar(&filter.Semana, "semana", false, "solo devoluciones de esta semana")
	c.Flags().BoolVar(&cerrados, "cerrados", false, "mostrar solo préstamos devueltos o perdidos")
	return c
}

func prestamosCrearCmd(a *app) *cobra.Command {
	var usuarioID, materialID, fecha string

	c := &cobra.Command{
		Use:   "crear",
		Short: "Registrar un préstamo nuevo",
		RunE: func(c *cobra.Command, _ []string) error {
			s, done, err := loadedPrestamos(a)
			if err != nil {
				return err
			}
			defer done()

			ctx, cancel := a.ctx()
			defer cancel()
			if err := s.CrearPrestamo(ctx, usuarioID, materialID, fecha); err != nil {
				return err
			}
			return printPrestamosNotice(c, s)
		},
	}
	c.Flags().StringVar(&usuarioID, "usuario", "", "id del usuario")
	c.Flags().StringVar(&materialID, "material", "", "id del material")
	c.Flags().StringVar(&fecha, "fecha", time.Now().Format("2006-01-02"), "fecha de devolución esperada")
	return c
}

func prestamosDevolverCmd(a *app) *cobra.Command {
	var observaciones string

	c := &cobra.Command{
		Use:   "devolver <prestamoId>",
		Short: "Registrar la devolución de un préstamo abierto",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, done, err := loadedPrestamos(a)
			if err != nil {
				return err
			}
			defer done()

			ctx, cancel := a.ctx()
			defer cancel()
			if err := s.RegistrarDevolucion(ctx, args[0], observaciones); err != nil {
				return err
			}
			return printPrestamosNotice(c, s)
		},
	}
	c.Flags().StringVar(&observaciones, "observaciones", "", "observaciones sobre el estado del material")
	return c
}

func prestamosMultaCmd(a *app) *cobra.Command {
	var accion string
	var monto float64

	c := &cobra.Command{
		Use:   "multa <usuarioId>",
		Short: "Pagar o ajustar la multa de un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, done, err := loadedPrestamos(a)
			if err != nil {
				return err
			}
			defer done()

			s.SetMulta(screen.MultaForm{UsuarioID: args[0], Accion: accion, Monto: monto})
			ctx, cancel := a.ctx()
			defer cancel()
			if err := s.AjustarMulta(ctx); err != nil {
				return err
			}
			return printPrestamosNotice(c, s)
		},
	}
	c.Flags().StringVar(&accion, "accion", model.MultaPagar, "pagar o ajustar")
	c.Flags().Float64Var(&monto, "monto", 0, "monto del pago o ajuste")
	return c
}

func prestamosResumenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resumen <usuarioId>",
		Short: "Resumen de préstamos y adeudo de un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()

			s := screen.NewPrestamos(a.client, a.log, time.Now)
			res, err := s.Resumen(ctx, args[0])
			if err != nil {
				return err
			}
			if a.asJSON {
				printJSON(c.OutOrStdout(), res)
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), "Préstamos activos:")
			printTable(c.OutOrStdout(), prestamoHeader, prestamoRows(res.Activos))
			fmt.Fprintln(c.OutOrStdout(), "\nHistorial:")
			printTable(c.OutOrStdout(), prestamoHeader, prestamoRows(res.Historial))
			fmt.Fprintf(c.OutOrStdout(), "\nAdeudo: %s\n", ftoa(res.Adeudo))
			return nil
		},
	}
}

func prestamosBuscarUsuariosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "buscar-usuarios <texto>",
		Short: "Buscar usuarios por apellido, identificación o correo",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, done, err := loadedPrestamos(a)
			if err != nil {
				return err
			}
			defer done()

			usuarios := s.BuscarUsuarios(args[0])
			if a.asJSON {
				printJSON(c.OutOrStdout(), usuarios)
				return nil
			}
			rows := make([][]string, 0, len(usuarios))
			for _, u := range usuarios {
				rows = append(rows, []string{u.ID, u.NombreCompleto(), u.Identificacion, u.Correo, ftoa(u.MultaAcumulada)})
			}
			printTable(c.OutOrStdout(), []string{"ID", "NOMBRE", "IDENTIFICACIÓN", "CORREO", "MULTA"}, rows)
			return nil
		},
	}
}

func prestamosBuscarMaterialesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "buscar-materiales <texto>",
		Short: "Buscar materiales por título, autor, edición o editorial",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, done, err := loadedPrestamos(a)
			if err != nil {
				return err
			}
			defer done()

			materiales := s.BuscarMateriales(args[0])
			if a.asJSON {
				printJSON(c.OutOrStdout(), materiales)
				return nil
			}
			rows := make([][]string, 0, len(materiales))
			for _, m := range materiales {
				rows = append(rows, []string{m.ID, m.Titulo, m.Autor, itoa(m.EjemplaresDisponibles) + "/" + itoa(m.EjemplaresTotal)})
			}
			printTable(c.OutOrStdout(), []string{"ID", "TÍTULO", "AUTOR", "DISP/TOTAL"}, rows)
			return nil
		},
	}
}

func printPrestamosNotice(c *cobra.Command, s *screen.Prestamos) error {
	if n, ok := s.Notice(); ok {
		fmt.Fprintln(c.OutOrStdout(), n.Message)
	}
	return nil
}
