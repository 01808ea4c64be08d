package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitkeeper/splitkeeper/internal/auth"
	"github.com/splitkeeper/splitkeeper/internal/models"
)

func expensesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List expenses you participate in",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, signOut, err := signIn(cmd)
			if err != nil {
				return err
			}
			defer signOut()

			if all {
				return printAllExpenses(session)
			}

			own, err := ledger.ExpensesFor(session)
			if err != nil {
				return err
			}
			if len(own) == 0 {
				fmt.Println("No expenses found for you.")
				return nil
			}

			for _, o := range own {
				printExpense(o.Expense)
				fmt.Printf("    your share: $%.2f\n", o.Share)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "List every recorded expense, not just your own")
	return cmd
}

func printAllExpenses(session auth.Session) error {
	expenses, err := ledger.AllExpenses(session)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses recorded.")
		return nil
	}

	for _, e := range expenses {
		printExpense(e)
		for _, share := range e.Shares {
			fmt.Printf("    %s: $%.2f\n", ledger.ActorName(share.ActorID), share.Amount)
		}
	}
	return nil
}

func printExpense(e *models.Expense) {
	fmt.Printf("#%d %s  $%.2f  %s  paid by %s  (%s)\n",
		e.ID, e.Description, e.TotalAmount, e.Method,
		ledger.ActorName(e.PayerID), e.CreatedAt.Format(models.TimeLayout))
}
