package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go-store-inventory/pkg/jwt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	storeFlag  = "store"
	ttlFlag    = "ttl"
	secretFlag = "secret"
)

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a session token for a store",
		Long: `Sign an HS256 session token whose subject is the given store id.

The secret defaults to JWT_SECRET (read from the environment or a .env file).
This is a local development aid, not a login flow.

Examples:
  issue-token issue --store store-42
  issue-token issue --store store-42 --ttl 1h`,
		RunE: runIssue,
	}

	cmd.Flags().String(storeFlag, "", "Store id to put in the token subject (required)")
	cmd.Flags().Duration(ttlFlag, 24*time.Hour, "Token lifetime")
	cmd.Flags().String(secretFlag, "", "Signing secret (defaults to JWT_SECRET)")
	_ = cmd.MarkFlagRequired(storeFlag)
	return cmd
}

func runIssue(cmd *cobra.Command, _ []string) error {
	storeID, _ := cmd.Flags().GetString(storeFlag)
	ttl, _ := cmd.Flags().GetDuration(ttlFlag)
	secret, _ := cmd.Flags().GetString(secretFlag)

	if secret == "" {
		_ = godotenv.Load()
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		return errors.New("no signing secret: set JWT_SECRET or pass --secret")
	}
	if ttl <= 0 {
		return errors.New("--ttl must be positive")
	}

	token, err := jwt.GenerateToken([]byte(secret), storeID, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
