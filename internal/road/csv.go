package road

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads all road segments from the CSV file at path.
func LoadCSV(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roads %s: %w", path, err)
	}
	defer f.Close()

	segs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("roads %s: %w", path, err)
	}
	return segs, nil
}

// ReadCSV parses road segments from r. The first row is the header; columns
// are matched case-insensitively and unknown columns are ignored.
// Any empty or unparsable cell rejects the whole table.
func ReadCSV(r io.Reader) ([]Segment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty road table: header row missing")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(head)
	if err != nil {
		return nil, err
	}

	var out []Segment
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if blank(row) {
			continue
		}
		seg, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, seg)
	}
	return out, nil
}

func headerIndex(head []string) (map[string]int, error) {
	idx := make(map[string]int, len(Columns))
	for _, col := range Columns {
		idx[col] = -1
		for i, h := range head {
			// Strip a UTF-8 BOM left on the first header.
			h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
			if strings.EqualFold(h, col) {
				idx[col] = i
				break
			}
		}
	}
	var missing []string
	for _, col := range Columns {
		if idx[col] < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (Segment, error) {
	cell := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("column %s is missing", col)
		}
		v := strings.TrimSpace(row[i])
		if v == "" {
			return "", fmt.Errorf("column %s is empty", col)
		}
		return v, nil
	}
	num := func(col string) (float64, error) {
		v, err := cell(col)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: invalid number %q", col, v)
		}
		return f, nil
	}

	var (
		seg Segment
		err error
	)
	if seg.From, err = cell(ColFrom); err != nil {
		return seg, err
	}
	if seg.To, err = cell(ColTo); err != nil {
		return seg, err
	}
	if seg.Green, err = num(ColGreen); err != nil {
		return seg, err
	}
	if seg.Red, err = num(ColRed); err != nil {
		return seg, err
	}
	if seg.Offset, err = num(ColOffset); err != nil {
		return seg, err
	}
	if seg.Distance, err = num(ColDistance); err != nil {
		return seg, err
	}
	return seg, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
