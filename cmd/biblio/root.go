package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"biblio-cli/internal/api"
	"biblio-cli/internal/config"
	"biblio-cli/internal/errs"
	"biblio-cli/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app carries the wired dependencies every subcommand shares.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	client  *api.Client
	session *session.Manager

	asJSON  bool
	verbose bool
	apiURL  string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "biblio",
		Short:         "Cliente de terminal para el sistema de gestión bibliotecaria",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "URL base del API (anula BIBLIO_API_URL)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "imprimir resultados como JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "registro detallado en stderr")

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRegisterCmd(a),
		newEntityCmd(a, materialesSpec()),
		newEntityCmd(a, usuariosSpec()),
		newEntityCmd(a, autoresSpec()),
		newEntityCmd(a, categoriasSpec()),
		newEntityCmd(a, editorialesSpec()),
		newPrestamosCmd(a),
	)
	return root
}

// init wires config, logging, the HTTP client and the restored session.
// It runs once per invocation, before any subcommand.
func (a *app) init() {
	a.cfg = config.Load()
	if a.apiURL != "" {
		a.cfg.BaseURL = a.apiURL
	}

	a.log = zap.NewNop()
	if a.verbose {
		if log, err := zap.NewDevelopment(); err == nil {
			a.log = log
		}
	}

	a.client = api.New(api.Options{
		BaseURL: a.cfg.BaseURL,
		Timeout: a.cfg.Timeout,
		Logger:  a.log,
	})
	a.session = session.NewManager(session.NewFileStore(a.cfg.TokenFile), a.log)
	a.session.Restore(time.Now())
}

func (a *app) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.Timeout+5*time.Second)
}

// requireSession is the route guard: operations beyond login/register need
// a restored librarian session.
func (a *app) requireSession() error {
	if _, ok := a.session.CurrentUser(); !ok {
		return fmt.Errorf("%w: inicie sesión con 'biblio login'", errs.ErrNoSession)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Versión del cliente",
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintf(c.OutOrStdout(), "biblio %s (%s)\n", version, buildDate)
		},
	}
}
