package road_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/greenwave/internal/road"
)

func createRoadDB(t *testing.T, rows ...[]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roads.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE roads (
		"From" TEXT, "To" TEXT,
		"Green_Time" REAL, "Red_Time" REAL, "Start_Time" REAL, "Distant" REAL
	)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO roads VALUES (?, ?, ?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := createRoadDB(t,
		[]interface{}{"A", "B", 10.0, 0.0, 0.0, 30.0},
		[]interface{}{"B", "C", 5.0, 5.0, 2.5, 15.0},
	)
	segs, err := road.LoadSQLite(path, "roads")
	require.NoError(t, err)
	assert.Equal(t, []road.Segment{
		{From: "A", To: "B", Green: 10, Red: 0, Offset: 0, Distance: 30},
		{From: "B", To: "C", Green: 5, Red: 5, Offset: 2.5, Distance: 15},
	}, segs)
}

func TestLoadSQLite_NullCell(t *testing.T) {
	path := createRoadDB(t,
		[]interface{}{"A", "B", 10.0, 0.0, 0.0, 30.0},
		[]interface{}{"B", "C", 5.0, nil, 0.0, 15.0},
	)
	_, err := road.LoadSQLite(path, "roads")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: column Red_Time is empty")
}

func TestLoadSQLite_BadInput(t *testing.T) {
	path := createRoadDB(t)

	_, err := road.LoadSQLite(path, "roads; DROP TABLE roads")
	require.Error(t, err)

	_, err = road.LoadSQLite(path, "missing")
	require.Error(t, err)

	_, err = road.LoadSQLite(filepath.Join(t.TempDir(), "nope.db"), "roads")
	require.Error(t, err)
}
