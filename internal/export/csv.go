package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

// Writer maintains one append-only CSV archive per region under Dir. The
// header row is written once, when the file is first created.
type Writer struct {
	dir string
	mu  sync.Mutex
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

var header = []string{
	"Project ID", "Customer Name", "Customer Email", "Customer Phone",
	"Date", "PO", "Address", "City", "Subdivision", "Lot Number",
	"Square Footage", "Job Cost Type", "Work Type", "Notes",
	"Created At", "Updated At",
}

func (w *Writer) path(region string) string {
	return filepath.Join(w.dir, fmt.Sprintf("projects_%s.csv", region))
}

// Append adds one denormalized record for the affected project.
func (w *Writer) Append(region string, row repository.ProjectRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	path := w.path(region)
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	return writeRecords(f, isNew, []repository.ProjectRow{row})
}

// Rewrite regenerates a region's archive from scratch, used after deletes.
func (w *Writer) Rewrite(region string, rows []repository.ProjectRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	f, err := os.Create(w.path(region))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	return writeRecords(f, true, rows)
}

// WriteAll streams a one-shot export of every project, header included.
func WriteAll(out io.Writer, rows []repository.ProjectRow) error {
	return writeRecords(out, true, rows)
}

func writeRecords(out io.Writer, withHeader bool, rows []repository.ProjectRow) error {
	cw := csv.NewWriter(out)

	if withHeader {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func record(r repository.ProjectRow) []string {
	return []string{
		r.Project.ID,
		orNA(r.Customer.Name),
		orNA(r.Customer.Email),
		orNA(r.Customer.Phone),
		r.Project.Date.Format("2006-01-02"),
		orNA(r.Project.PO),
		r.Project.Address,
		orNA(r.Project.City),
		orNA(r.Project.Subdivision),
		orNA(r.Project.LotNumber),
		orNAInt(r.Project.SquareFootage),
		orNA(r.Project.JobCostType),
		orNA(r.Project.WorkType),
		orNA(r.Project.Notes),
		r.Project.CreatedAt.Format(time.DateTime),
		r.Project.UpdatedAt.Format(time.DateTime),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNAInt(n int) string {
	if n == 0 {
		return "N/A"
	}
	return strconv.Itoa(n)
}
