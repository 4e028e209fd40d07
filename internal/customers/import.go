package customers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

// ImportResult summarizes one bulk import run.
type ImportResult struct {
	Imported int
	Updated  int
	Skipped  int
}

// ImportCSV loads customers from a QuickBooks-style export with Customer,
// First_Name, Last_Name, Phone and Main_Email columns, upserting by phone.
// Rows without a phone number are skipped; phone is the matching key.
func ImportCSV(ctx context.Context, store repository.Store, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import customers: %w", err)
	}
	defer f.Close()
	return importFrom(ctx, store, f)
}

func importFrom(ctx context.Context, store repository.Store, r io.Reader) (*ImportResult, error) {
	cr := csv.NewReader(r)
	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("import customers: read header: %w", err)
	}

	col := make(map[string]int, len(headers))
	for i, h := range headers {
		col[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	res := &ImportResult{}
	err = store.RunInTx(ctx, func(tx repository.Tx) error {
		for {
			row, err := cr.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read row: %w", err)
			}

			phone := field(row, "Phone")
			if phone == "" {
				res.Skipped++
				continue
			}

			name := field(row, "Customer")
			first := field(row, "First_Name")
			last := field(row, "Last_Name")
			if name == "" {
				name = strings.TrimSpace(first + " " + last)
			}

			c := domain.Customer{
				Name:      name,
				FirstName: first,
				LastName:  last,
				Phone:     phone,
				Email:     field(row, "Main_Email"),
			}

			existing, err := tx.FindCustomerByPhone(ctx, phone)
			switch err {
			case nil:
				c.ID = existing.ID
				if err := tx.UpdateCustomer(ctx, &c); err != nil {
					return err
				}
				res.Updated++
			case domain.ErrCustomerNotFound:
				if err := tx.InsertCustomer(ctx, &c); err != nil {
					return err
				}
				res.Imported++
			default:
				return err
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("import customers: %w", err)
	}

	log.Printf("[customers] import done: %d new, %d updated, %d skipped", res.Imported, res.Updated, res.Skipped)
	return res, nil
}
