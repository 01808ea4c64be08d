package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func actorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actors",
		Short: "List registered accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			actors := ledger.ListActors()
			if len(actors) == 0 {
				fmt.Println("No accounts registered yet.")
				return nil
			}
			for _, a := range actors {
				fmt.Printf("ID: %d | Name: %s | Email: %s | Phone: %s\n", a.ID, a.Name, a.Email, a.Phone)
			}
			return nil
		},
	}
}
