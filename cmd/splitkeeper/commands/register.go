package commands

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	var (
		name  string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			if !validEmail(email) {
				return fmt.Errorf("invalid email format")
			}
			if !validPhone(phone) {
				return fmt.Errorf("invalid phone number (must be 10+ digits)")
			}

			actor, err := ledger.Register(cmd.Context(), name, email, phone, password)
			if err != nil {
				return err
			}

			fmt.Printf("Registered %s (ID: %d)\n", actor.Name, actor.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	return cmd
}

// Basic shape checks only; the core assumes these are already satisfied.
func validEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

func validPhone(s string) bool {
	if len(s) < 10 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
