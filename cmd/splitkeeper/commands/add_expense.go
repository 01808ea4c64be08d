package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitkeeper/splitkeeper/internal/models"
	"github.com/splitkeeper/splitkeeper/internal/storage"
)

func addExpenseCmd() *cobra.Command {
	var (
		description  string
		amount       float64
		methodTag    string
		participants []int64
		shares       []float64
	)

	cmd := &cobra.Command{
		Use:   "add-expense",
		Short: "Record an expense paid by you",
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := models.ParseSplitMethod(methodTag)
			if err != nil {
				return fmt.Errorf("invalid --method %q (want EQUAL, EXACT, or PERCENTAGE)", methodTag)
			}

			session, signOut, err := signIn(cmd)
			if err != nil {
				return err
			}
			defer signOut()

			expense, err := ledger.RecordExpense(cmd.Context(), session, description, amount, method, participants, shares)
			if errors.Is(err, storage.ErrWriteFailure) {
				fmt.Printf("Expense %d recorded, but saving failed: %v\n", expense.ID, err)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Expense added (ID: %d)\n", expense.ID)
			for _, share := range expense.Shares {
				fmt.Printf("  %s (ID: %d): $%.2f\n", ledger.ActorName(share.ActorID), share.ActorID, share.Amount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what the expense was for")
	cmd.Flags().Float64Var(&amount, "amount", 0, "total amount paid")
	cmd.Flags().StringVar(&methodTag, "method", "EQUAL", "split method: EQUAL, EXACT, or PERCENTAGE")
	cmd.Flags().Int64SliceVar(&participants, "participants", nil, "participant actor ids")
	cmd.Flags().Float64SliceVar(&shares, "shares", nil, "per-participant amounts (EXACT) or percentages (PERCENTAGE)")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("participants")
	return cmd
}
