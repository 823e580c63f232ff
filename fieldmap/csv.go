package fieldmap

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteColumns writes equally long columns as CSV with a header line.
func WriteColumns(w io.Writer, header []string, columns ...[]float64) error {
	if len(header) != len(columns) {
		return fmt.Errorf("%d column names for %d columns", len(header), len(columns))
	}
	n := 0
	if len(columns) > 0 {
		n = len(columns[0])
	}
	for i, c := range columns {
		if len(c) != n {
			return fmt.Errorf("column %q has %d rows, want %d", header[i], len(c), n)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for row := 0; row < n; row++ {
		for i, c := range columns {
			record[i] = strconv.FormatFloat(c[row], 'g', 10, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
