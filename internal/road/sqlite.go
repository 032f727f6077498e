package road

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads road segments from table in the SQLite database at path.
// The table uses the same column names as the CSV format. The database is
// opened read-only; a NULL cell rejects the whole table.
func LoadSQLite(path, table string) ([]Segment, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	query := fmt.Sprintf(`SELECT "%s", "%s", "%s", "%s", "%s", "%s" FROM "%s" ORDER BY rowid`,
		ColFrom, ColTo, ColGreen, ColRed, ColOffset, ColDistance, table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out []Segment
	n := 0
	for rows.Next() {
		n++
		var from, to sql.NullString
		var green, red, offset, distance sql.NullFloat64
		if err := rows.Scan(&from, &to, &green, &red, &offset, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan %s row %d: %w", table, n, err)
		}
		cols := []struct {
			name  string
			valid bool
		}{
			{ColFrom, from.Valid && from.String != ""},
			{ColTo, to.Valid && to.String != ""},
			{ColGreen, green.Valid},
			{ColRed, red.Valid},
			{ColOffset, offset.Valid},
			{ColDistance, distance.Valid},
		}
		for _, c := range cols {
			if !c.valid {
				return nil, fmt.Errorf("%s row %d: column %s is empty", table, n, c.name)
			}
		}
		out = append(out, Segment{
			From:     from.String,
			To:       to.String,
			Green:    green.Float64,
			Red:      red.Float64,
			Offset:   offset.Float64,
			Distance: distance.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return out, nil
}
