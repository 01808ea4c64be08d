package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/splitkeeper/splitkeeper/internal/models"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your expense history as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, signOut, err := signIn(cmd)
			if err != nil {
				return err
			}
			defer signOut()

			rows, err := ledger.ExportLedger(session)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()

			w := csv.NewWriter(f)
			header := []string{
				"Expense ID", "Description", "Total Amount", "Payer ID", "Payer Name",
				"Participant ID", "Participant Name", "Share", "Created At",
			}
			if err := w.Write(header); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			for _, row := range rows {
				record := []string{
					strconv.FormatInt(row.ExpenseID, 10),
					row.Description,
					fmt.Sprintf("%.2f", row.TotalAmount),
					strconv.FormatInt(row.PayerID, 10),
					row.PayerName,
					strconv.FormatInt(row.ParticipantID, 10),
					row.ParticipantName,
					fmt.Sprintf("%.2f", row.Share),
					row.CreatedAt.Format(models.TimeLayout),
				}
				if err := w.Write(record); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Printf("Exported %d rows to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "balance_sheet.csv", "output file path")
	return cmd
}
