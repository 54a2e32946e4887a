// seed_regions genera el script SQL que puebla region_fees a partir de un CSV
// con columnas country,state,lga,city,city_region,fee (con encabezado).
//
// Uso: go run ./cmd/seed_regions [ruta/regiones.csv] [salida.sql]
// El CSV puede venir en UTF-8 o Latin-1; se detecta solo.
// Por defecto escribe migrations/002_seed_region_fees.sql.
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// regionFee una fila del CSV ya validada.
type regionFee struct {
	Country, State, LGA, City, CityRegion string
	Fee                                   decimal.Decimal
}

func (r regionFee) key() string {
	return strings.ToLower(strings.Join([]string{r.Country, r.State, r.LGA, r.City, r.CityRegion}, "|"))
}

var header = []string{"country", "state", "lga", "city", "city_region", "fee"}

func main() {
	csvPath := "region_fees.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_region_fees.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := readRows(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows, uuid.NewString); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d regiones\n", outPath, len(rows))
}

// decodeInput devuelve un lector UTF-8; lo que no es UTF-8 válido se lee como Latin-1.
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

// readRows valida encabezado y filas. Una región repetida (sin distinguir mayúsculas) se queda con la última tarifa.
func readRows(r io.Reader) ([]regionFee, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(header)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(head[i]), h) {
			return nil, fmt.Errorf("encabezado inválido: columna %d es %q, se esperaba %q", i+1, head[i], h)
		}
	}

	byKey := make(map[string]regionFee)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		for i, v := range rec[:5] {
			if v == "" {
				return nil, fmt.Errorf("línea %d: %s vacío", line, header[i])
			}
		}
		fee, err := decimal.NewFromString(rec[5])
		if err != nil {
			return nil, fmt.Errorf("línea %d: fee %q no es numérico", line, rec[5])
		}
		if fee.IsNegative() {
			return nil, fmt.Errorf("línea %d: fee negativo", line)
		}
		row := regionFee{Country: rec[0], State: rec[1], LGA: rec[2], City: rec[3], CityRegion: rec[4], Fee: fee.Round(2)}
		byKey[row.key()] = row
	}

	rows := make([]regionFee, 0, len(byKey))
	for _, r := range byKey {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key() < rows[j].key() })
	return rows, nil
}

// writeSQL escribe un INSERT por región con upsert sobre el índice único case-insensitive.
func writeSQL(w io.Writer, rows []regionFee, newID func() string) error {
	var b strings.Builder
	b.WriteString("-- Tarifas de verificación por región de ciudad\n")
	b.WriteString("-- Generado por cmd/seed_regions\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "INSERT INTO region_fees (id, country, state, lga, city, city_region, fee)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', %s)\n",
			newID(), escapeSQL(r.Country), escapeSQL(r.State), escapeSQL(r.LGA),
			escapeSQL(r.City), escapeSQL(r.CityRegion), r.Fee.StringFixed(2))
		b.WriteString("ON CONFLICT (lower(country), lower(state), lower(lga), lower(city), lower(city_region)) DO UPDATE SET fee = EXCLUDED.fee;\n")
	}
	_, err := io.WriteString(w, b.String())
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
			return dir
		}
		dir = parent
	}
}
