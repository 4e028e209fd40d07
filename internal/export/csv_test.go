package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

func sampleRow(id, address string) repository.ProjectRow {
	return repository.ProjectRow{
		Project: domain.Project{
			ID:        id,
			Date:      time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			Address:   address,
			Region:    "utah_county",
			WorkType:  "driveway",
			CreatedAt: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		Customer: domain.Customer{
			ID:    1,
			Name:  "Jordan Avery",
			Phone: "801-555-0100",
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriter_Append(t *testing.T) {
	t.Run("first write creates file with header", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriter(dir)

		require.NoError(t, w.Append("utah_county", sampleRow("p-1", "123 Alder Ln")))

		records := readCSV(t, filepath.Join(dir, "projects_utah_county.csv"))
		require.Len(t, records, 2)
		assert.Equal(t, header, records[0])
		assert.Equal(t, "p-1", records[1][0])
	})

	t.Run("later writes append without repeating the header", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriter(dir)

		require.NoError(t, w.Append("utah_county", sampleRow("p-1", "123 Alder Ln")))
		require.NoError(t, w.Append("utah_county", sampleRow("p-2", "456 Birch St")))

		records := readCSV(t, filepath.Join(dir, "projects_utah_county.csv"))
		require.Len(t, records, 3)
		assert.Equal(t, "p-1", records[1][0])
		assert.Equal(t, "p-2", records[2][0])
	})

	t.Run("regions get separate files", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriter(dir)

		require.NoError(t, w.Append("utah_county", sampleRow("p-1", "123 Alder Ln")))
		require.NoError(t, w.Append("salt_lake", sampleRow("p-2", "456 Birch St")))

		assert.FileExists(t, filepath.Join(dir, "projects_utah_county.csv"))
		assert.FileExists(t, filepath.Join(dir, "projects_salt_lake.csv"))
	})

	t.Run("empty optionals are filled with N/A", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriter(dir)

		require.NoError(t, w.Append("utah_county", sampleRow("p-1", "123 Alder Ln")))

		records := readCSV(t, filepath.Join(dir, "projects_utah_county.csv"))
		row := records[1]
		assert.Equal(t, "N/A", row[2])  // email
		assert.Equal(t, "N/A", row[5])  // po
		assert.Equal(t, "N/A", row[10]) // square footage
	})
}

func TestWriter_Rewrite(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.Append("utah_county", sampleRow("p-1", "123 Alder Ln")))
	require.NoError(t, w.Append("utah_county", sampleRow("p-2", "456 Birch St")))

	// p-1 deleted, archive regenerated from the survivors
	require.NoError(t, w.Rewrite("utah_county", []repository.ProjectRow{sampleRow("p-2", "456 Birch St")}))

	records := readCSV(t, filepath.Join(dir, "projects_utah_county.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, header, records[0])
	assert.Equal(t, "p-2", records[1][0])
}

func TestWriteAll(t *testing.T) {
	var buf bytes.Buffer
	rows := []repository.ProjectRow{sampleRow("p-1", "123 Alder Ln"), sampleRow("p-2", "456 Birch St")}

	require.NoError(t, WriteAll(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, header, records[0])
}
