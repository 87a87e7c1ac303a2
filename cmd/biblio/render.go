package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"biblio-cli/internal/model"
)

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// printTable renders rows under a header with aligned columns.
func printTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, join(header))
	for _, row := range rows {
		fmt.Fprintln(tw, join(row))
	}
	_ = tw.Flush()
}

func join(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += "\t"
		}
		out += c
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func prestamoRows(list []model.Prestamo) [][]string {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.ID, p.ClavePrestamo, p.UsuarioNombre, p.MaterialTitulo,
			p.FechaDevolucionEsperada, p.Estado,
		})
	}
	return rows
}

var prestamoHeader = []string{"ID", "CLAVE", "USUARIO", "MATERIAL", "DEVOLUCIÓN", "ESTADO"}
