// seed_cnae genera el script SQL de la tabla cnae_anexos a partir del CSV de
// CNAEs permitidas en el Simples Nacional (ISO-8859-1, separador ";").
//
// Columnas: cnae;descricao;anexo. El anexo puede venir como "I".."V", "III ou V",
// "III/V" o "Fator R"; estos tres últimos se guardan como FATOR_R.
//
// Uso: go run ./cmd/seed_cnae [ruta/cnaes_simples.csv]
// Escribe: internal/infrastructure/postgres/migrations/002_seed_cnae_anexos.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
)

type cnaeRow struct {
	cnae  string
	desc  string
	anexo string
}

func main() {
	csvPath := "cnaes_simples.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := parseCSV(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "omitida: %s\n", s)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_cnae_anexos.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d CNAEs (%d omitidas)\n", outPath, len(rows), len(skipped))
}

// parseCSV devuelve las filas válidas ordenadas por CNAE (sin duplicados; gana la última)
// y la descripción de las omitidas.
func parseCSV(r io.Reader) ([]cnaeRow, []string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	byCode := make(map[string]cnaeRow)
	var skipped []string
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++
		if len(rec) < 3 {
			skipped = append(skipped, fmt.Sprintf("línea %d: %d columnas", line, len(rec)))
			continue
		}
		code, ok := normalizeCNAE(rec[0])
		if !ok {
			if line > 1 { // la primera línea suele ser el encabezado
				skipped = append(skipped, fmt.Sprintf("línea %d: CNAE %q", line, rec[0]))
			}
			continue
		}
		anexo, ok := normalizeAnexo(rec[2])
		if !ok {
			skipped = append(skipped, fmt.Sprintf("línea %d: anexo %q", line, rec[2]))
			continue
		}
		byCode[code] = cnaeRow{cnae: code, desc: strings.TrimSpace(rec[1]), anexo: anexo}
	}

	codes := make([]string, 0, len(byCode))
	for c := range byCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	rows := make([]cnaeRow, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, byCode[c])
	}
	return rows, skipped, nil
}

// normalizeCNAE acepta "6201501", "6201-5/01" o "62.01-5-01" y devuelve "6201-5/01".
func normalizeCNAE(s string) (string, bool) {
	var digits []byte
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
		}
	}
	if len(digits) != 7 {
		return "", false
	}
	d := string(digits)
	return d[:4] + "-" + d[4:5] + "/" + d[5:], true
}

func normalizeAnexo(s string) (string, bool) {
	a := strings.ToUpper(strings.TrimSpace(s))
	a = strings.TrimPrefix(a, "ANEXO ")
	switch a {
	case "III OU V", "III/V", "FATOR R", simples.SwitchableCode:
		return simples.SwitchableCode, true
	case string(simples.AnexoI), string(simples.AnexoII), string(simples.AnexoIII),
		string(simples.AnexoIV), string(simples.AnexoV):
		return a, true
	default:
		return "", false
	}
}

func writeSQL(w io.Writer, rows []cnaeRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("sin filas válidas")
	}
	if _, err := fmt.Fprintln(w, "-- Generado por cmd/seed_cnae. No editar a mano."); err != nil {
		return err
	}
	fmt.Fprintln(w, "INSERT INTO cnae_anexos (cnae, description, anexo) VALUES")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  ('%s', '%s', '%s')%s\n", r.cnae, escapeSQL(r.desc), r.anexo, sep)
	}
	_, err := fmt.Fprintln(w, "ON CONFLICT (cnae) DO UPDATE SET description = EXCLUDED.description, anexo = EXCLUDED.anexo;")
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
