package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pyme-dashboard/internal/domain"
	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

// table es un archivo CSV leído en memoria con su cabecera indexada por nombre.
type table struct {
	file   string
	header map[string]int
	rows   [][]string
}

// readTable lee un CSV con fila de cabecera. Los nombres de columna se normalizan
// (minúsculas, sin espacios ni BOM). Con enc != nil el archivo se decodifica a UTF-8.
func readTable(path string, enc encoding.Encoding) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(f, enc.NewDecoder())
	}
	return parseTable(path, r)
}

func parseTable(name string, r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Filas cortas: las columnas finales ausentes se leen como vacías.
	reader.FieldsPerRecord = -1

	head, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: archivo vacío, falta la cabecera", name)
		}
		return nil, fmt.Errorf("%s: leer cabecera: %w", name, err)
	}
	t := &table{file: name, header: make(map[string]int, len(head))}
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		t.header[h] = i
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

// require verifica que existan las columnas obligatorias.
func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", t.file, domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// cursor da acceso tipado a las celdas de una fila y acumula el primer error.
type cursor struct {
	t   *table
	row []string
	n   int // número de línea en el archivo (la cabecera es la 1)
	err error
}

func (t *table) each(fn func(c *cursor)) error {
	for i, row := range t.rows {
		c := &cursor{t: t, row: row, n: i + 2}
		fn(c)
		if c.err != nil {
			return c.err
		}
	}
	return nil
}

// str devuelve la celda sin espacios; "" si la columna no existe.
func (c *cursor) str(col string) string {
	i, ok := c.t.header[col]
	if !ok || i >= len(c.row) {
		return ""
	}
	return strings.TrimSpace(c.row[i])
}

func (c *cursor) fail(col string, err error) {
	if c.err == nil {
		c.err = fmt.Errorf("%s línea %d columna %q: %w", c.t.file, c.n, col, err)
	}
}

// decimal interpreta un número; vacío o ausente vale cero.
func (c *cursor) decimal(col string) decimal.Decimal {
	v := c.nullDecimal(col)
	return v.Decimal
}

// nullDecimal interpreta un número opcional; vacío o ausente es Valid=false.
func (c *cursor) nullDecimal(col string) decimal.NullDecimal {
	s := c.str(col)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.NullDecimal{}
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		c.fail(col, fmt.Errorf("%w: %q", domain.ErrInvalidNumber, s))
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v)
}

// date interpreta una fecha obligatoria. Un valor vacío o ilegible es un error fatal de carga.
func (c *cursor) date(col string) time.Time {
	s := c.str(col)
	if s == "" {
		c.fail(col, fmt.Errorf("%w: vacía", domain.ErrInvalidDate))
		return time.Time{}
	}
	t, err := entity.ParseDate(s)
	if err != nil {
		c.fail(col, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s))
		return time.Time{}
	}
	return t
}
