package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitkeeper/splitkeeper/internal/calculator"
	"github.com/splitkeeper/splitkeeper/internal/service"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your net balance against every counterparty",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, signOut, err := signIn(cmd)
			if err != nil {
				return err
			}
			defer signOut()

			balances, err := ledger.Balances(session)
			if err != nil {
				return err
			}

			settled := true
			for _, id := range service.SortedCounterparties(balances) {
				amount := balances[id]
				if calculator.Settled(amount) {
					continue
				}
				settled = false
				name := ledger.ActorName(id)
				if amount > 0 {
					fmt.Printf("%s owes you: $%.2f\n", name, amount)
				} else {
					fmt.Printf("You owe %s: $%.2f\n", name, -amount)
				}
			}
			if settled {
				fmt.Println("All settled up!")
			}
			return nil
		},
	}
}
