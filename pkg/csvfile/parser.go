// Package csvfile lee archivos delimitados de despachos en filas crudas.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row fila de datos (sin encabezado). Number es el número de registro en el archivo, 1-based.
// Una celda vacía se marca como ausente; el texto de las demás se conserva tal cual.
type Row struct {
	Number  int
	cells   []string
	present []bool
}

// NewRow construye una fila; las celdas "" quedan ausentes.
func NewRow(number int, cells ...string) Row {
	present := make([]bool, len(cells))
	for i, c := range cells {
		present[i] = c != ""
	}
	return Row{Number: number, cells: append([]string(nil), cells...), present: present}
}

// Get devuelve la celda en la posición dada; ok=false si la posición no existe o la celda estaba vacía.
func (r Row) Get(position int) (string, bool) {
	if position < 0 || position >= len(r.cells) || !r.present[position] {
		return "", false
	}
	return r.cells[position], true
}

// SameCell indica si dos filas tienen el mismo valor en la posición: mismo texto,
// o ambas ausentes.
func (r Row) SameCell(other Row, position int) bool {
	a, okA := r.Get(position)
	b, okB := other.Get(position)
	return okA == okB && a == b
}

// Len cantidad de celdas.
func (r Row) Len() int { return len(r.cells) }

// Parser lee archivos CSV con el charset configurado.
type Parser struct {
	decoder encoding.Encoding
	log     zerolog.Logger
}

// NewParser crea el parser. charset admite UTF-8 (por defecto), ISO-8859-1 y Windows-1252.
func NewParser(charset string, log zerolog.Logger) (*Parser, error) {
	var enc encoding.Encoding
	switch strings.ToUpper(strings.TrimSpace(charset)) {
	case "", "UTF-8", "UTF8":
	case "ISO-8859-1", "LATIN1":
		enc = charmap.ISO8859_1
	case "WINDOWS-1252", "CP1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
	return &Parser{decoder: enc, log: log}, nil
}

// Parse lee todas las filas de r y lo cierra siempre. Si headerInFile, el primer registro se descarta
// (no se compara con los key paths). Un registro con distinta cantidad de celdas que el primero
// devuelve domain.ErrMalformedFile.
func (p *Parser) Parse(r io.ReadCloser, headerInFile bool) ([]Row, error) {
	defer r.Close()

	var src io.Reader = r
	if p.decoder != nil {
		src = transform.NewReader(r, p.decoder.NewDecoder())
	}
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = 0

	var rows []Row
	number := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		number++
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: registro %d: %v", domain.ErrMalformedFile, number, record)
			}
			return nil, fmt.Errorf("%w: registro %d: %v", domain.ErrMalformedFile, number, err)
		}
		if headerInFile && number == 1 {
			continue
		}
		rows = append(rows, NewRow(number, record...))
	}
	p.log.Debug().Int("rows", len(rows)).Bool("header", headerInFile).Msg("archivo de despacho leído")
	return rows, nil
}
