// Command export writes all document requests to an Excel workbook for
// offline reporting. Usage: go run ./cmd/export [output.xlsx]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"findmydocs/internal/config"
	"findmydocs/internal/domain"
	"findmydocs/internal/repository/postgres"
)

const pageSize = 500

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := "requests.xlsx"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	requestRepo := postgres.NewRequestRepo(db)
	ctx := context.Background()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Requests"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"ID", "Kind", "Submitter", "Role", "Reason", "Status",
		"Rejection Reason", "Decisions", "Submitted At", "Updated At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for offset := 0; ; offset += pageSize {
		requests, total, err := requestRepo.List(ctx, offset, pageSize)
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}

		for _, req := range requests {
			values := []interface{}{
				req.ID.String(),
				req.Kind.Label(),
				req.SubmitterName,
				string(req.SubmitterRole),
				req.Reason,
				req.Status,
				req.RejectionReason,
				formatDecisions(req.Approvals),
				req.SubmittedAt.Format(time.RFC3339),
				req.UpdatedAt.Format(time.RFC3339),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fmt.Errorf("write row %d: %w", row, err)
				}
			}
			row++
		}

		if offset+pageSize >= total || len(requests) == 0 {
			break
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	log.Printf("exported %d requests to %s", row-2, outPath)
	return nil
}

func formatDecisions(logEntries domain.ApprovalLog) string {
	out := ""
	for i, e := range logEntries {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s (%s): %s", e.ActorName, e.ActorRole, e.Decision)
	}
	return out
}
