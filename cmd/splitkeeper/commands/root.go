// Package commands wires the one-shot CLI surface over the ledger service.
// Everything here is presentation: prompting, formatting, and input-shape
// checks live in this package, never in the core.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/splitkeeper/splitkeeper/internal/auth"
	"github.com/splitkeeper/splitkeeper/internal/service"
	"github.com/splitkeeper/splitkeeper/internal/storage"
	"github.com/splitkeeper/splitkeeper/internal/storage/sqlite"
	"github.com/splitkeeper/splitkeeper/internal/storage/textfile"
	"github.com/splitkeeper/splitkeeper/pkg/logging"
)

const sessionDuration = 24 * time.Hour

var (
	dataDir      string
	storeBackend string
	email        string
	password     string

	store  storage.Store
	ledger *service.Ledger
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func Execute() error {
	root := &cobra.Command{
		Use:           "splitkeeper",
		Short:         "Track shared expenses and who owes whom",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup()

			var err error
			switch storeBackend {
			case "text":
				store, err = textfile.New(dataDir)
			case "sqlite":
				store, err = sqlite.New(filepath.Join(dataDir, "ledger.db"))
			default:
				return fmt.Errorf("unknown store backend %q (want text or sqlite)", storeBackend)
			}
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}

			sessions := auth.NewManager(getEnv("SESSION_SECRET", "splitkeeper-dev-secret"), sessionDuration)
			ledger, err = service.New(cmd.Context(), store, sessions, slog.Default())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if store != nil {
				return store.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", getEnv("DATA_DIR", "data"), "ledger data directory")
	root.PersistentFlags().StringVar(&storeBackend, "store", "text", "storage backend: text or sqlite")
	root.PersistentFlags().StringVarP(&email, "email", "e", "", "account email")
	root.PersistentFlags().StringVarP(&password, "password", "p", "", "account password")

	root.AddCommand(registerCmd(), actorsCmd(), addExpenseCmd(), expensesCmd(), balanceCmd(), exportCmd())
	return root.Execute()
}

// signIn authenticates with the persistent --email/--password flags and
// returns the session plus a sign-out func.
func signIn(cmd *cobra.Command) (auth.Session, func(), error) {
	if email == "" || password == "" {
		return auth.Session{}, nil, fmt.Errorf("--email and --password are required")
	}
	session, err := ledger.Authenticate(cmd.Context(), email, password)
	if err != nil {
		return auth.Session{}, nil, err
	}
	return session, func() { ledger.SignOut(session) }, nil
}
