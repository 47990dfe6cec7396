package molecule

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/molscreen/vinauto/internal/logging"
	"github.com/molscreen/vinauto/pkg/errors"
)

// Loader parses molecule tables into ordered Record sequences.
type Loader struct {
	log logging.Logger
}

// NewLoader constructs a Loader that reports dropped rows through log.
func NewLoader(log logging.Logger) *Loader {
	return &Loader{log: log.Named("loader")}
}

// LoadFile opens path and delegates to Load.
func (l *Loader) LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInputFormat,
			fmt.Sprintf("cannot open molecule table %q", path))
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads a delimited table with at least two columns (name first,
// SMILES second) and returns the records in input order.  An optional
// header row is skipped when its first cell reads "name" or its second reads
// "smiles" (case-insensitive).  Rows whose name or post-sanitization SMILES
// is empty are dropped with a warning.  Sanitized names that collide are
// disambiguated deterministically in input order by appending "_2", "_3", …
// to later occurrences.
func (l *Loader) Load(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count is validated per row
	cr.TrimLeadingSpace = true

	var records []Record
	used := make(map[string]bool)
	row := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInputFormat,
				fmt.Sprintf("malformed molecule table at row %d", row+1))
		}
		row++

		if len(fields) < 2 {
			return nil, errors.Newf(errors.CodeInputFormat,
				"molecule table row %d has %d column(s), need at least 2", row, len(fields))
		}

		if row == 1 && isHeader(fields) {
			continue
		}

		name := SanitizeName(fields[0])
		smiles := SanitizeSMILES(fields[1])

		if name == "" || smiles == "" {
			l.log.Warn("dropping invalid table row",
				logging.Int("row", row),
				logging.String("name", strings.TrimSpace(fields[0])),
				logging.String("smiles", strings.TrimSpace(fields[1])))
			continue
		}

		// Deterministic disambiguation: later collisions get the lowest free
		// numeric suffix, so re-running the same table yields the same names.
		base := name
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true
		if name != base {
			l.log.Warn("duplicate molecule name, disambiguating",
				logging.String("name", base),
				logging.String("renamed", name))
		}

		records = append(records, Record{Name: name, SMILES: smiles})
	}

	if row == 0 {
		return nil, errors.New(errors.CodeInputFormat, "molecule table is empty")
	}

	return records, nil
}

// isHeader reports whether the first row of the table is a column header
// rather than data.
func isHeader(fields []string) bool {
	first := strings.ToLower(strings.TrimSpace(fields[0]))
	second := strings.ToLower(strings.TrimSpace(fields[1]))
	return first == "name" || first == "id" || second == "smiles"
}
