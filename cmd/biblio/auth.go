package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"biblio-cli/internal/model"
	"biblio-cli/internal/session"
	"biblio-cli/internal/validate"
)

// prompter reads interactive answers. One instance per command run so
// consecutive prompts share the same buffered reader.
type prompter struct {
	c  *cobra.Command
	sc *bufio.Scanner
}

func newPrompter(c *cobra.Command) *prompter {
	return &prompter{c: c, sc: bufio.NewScanner(c.InOrStdin())}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.c.OutOrStdout(), prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("entrada vacía")
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// password masks input when stdin is a terminal and falls back to a plain
// line read otherwise (pipes, tests).
func (p *prompter) password(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(p.c.OutOrStdout(), prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(p.c.OutOrStdout())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return p.line(prompt)
}

func newLoginCmd(a *app) *cobra.Command {
	var correo, clave string

	c := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión como bibliotecario",
		RunE: func(c *cobra.Command, _ []string) error {
			var err error
			p := newPrompter(c)
			if correo == "" {
				if correo, err = p.line("Correo: "); err != nil {
					return err
				}
			}
			if clave == "" {
				if clave, err = p.password("Clave: "); err != nil {
					return err
				}
			}

			ctx, cancel := a.ctx()
			defer cancel()
			token, err := a.client.Authenticate(ctx, correo, clave)
			if err != nil {
				return err
			}
			if err := a.session.SignIn(token, time.Now()); err != nil {
				return err
			}
			user, _ := a.session.CurrentUser()
			fmt.Fprintf(c.OutOrStdout(), "Sesión iniciada como %s\n", nombreDe(user, correo))
			return nil
		},
	}
	c.Flags().StringVar(&correo, "correo", "", "correo electrónico")
	c.Flags().StringVar(&clave, "clave", "", "clave (se pregunta si se omite)")
	return c
}

func nombreDe(u session.Claims, fallback string) string {
	if u.Nombre != "" {
		return u.Nombre
	}
	if u.Correo != "" {
		return u.Correo
	}
	return fallback
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión actual",
		RunE: func(c *cobra.Command, _ []string) error {
			if err := a.session.SignOut(); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar la identidad de la sesión actual",
		RunE: func(c *cobra.Command, _ []string) error {
			user, ok := a.session.CurrentUser()
			if !ok {
				fmt.Fprintln(c.OutOrStdout(), "Sin sesión")
				return nil
			}
			if a.asJSON {
				printJSON(c.OutOrStdout(), user)
				return nil
			}
			fmt.Fprintf(c.OutOrStdout(), "%s <%s> (%s)\n", user.Nombre, user.Correo, user.Estado)
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var r model.Registro

	c := &cobra.Command{
		Use:   "register",
		Short: "Registrar una cuenta de usuario",
		RunE: func(c *cobra.Command, _ []string) error {
			if r.Clave == "" {
				p := newPrompter(c)
				clave, err := p.password("Clave: ")
				if err != nil {
					return err
				}
				confirma, err := p.password("Confirmar clave: ")
				if err != nil {
					return err
				}
				if clave != confirma {
					return errors.New("las claves no coinciden")
				}
				r.Clave = clave
			}
			if err := validate.Registro(r, true); err != nil {
				return err
			}

			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.client.Register(ctx, r); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "Registro exitoso, ya puede iniciar sesión")
			return nil
		},
	}
	c.Flags().StringVar(&r.Nombre, "nombre", "", "nombre")
	c.Flags().StringVar(&r.Apellido, "apellido", "", "apellido")
	c.Flags().StringVar(&r.Identificacion, "identificacion", "", "identificación")
	c.Flags().StringVar(&r.Correo, "correo", "", "correo electrónico")
	c.Flags().StringVar(&r.Telefono, "telefono", "", "teléfono (10 dígitos)")
	c.Flags().StringVar(&r.Clave, "clave", "", "clave (se pregunta si se omite)")
	return c
}
