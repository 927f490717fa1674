package ctl

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daybook/internal/server/auth"
	"github.com/dmitrijs2005/daybook/internal/server/config"
	"github.com/spf13/cobra"
)

func addIssueKey(topLevel *cobra.Command, cfg *config.Config) {
	var (
		secret = cfg.SecretKey
		role   = auth.RoleAnon
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue-key",
		Short: "Sign an access key for clients.",
		Long: `Sign an access key for clients.

Anon keys may read entries, add entries and upload images. Deleting
entries and removing stored objects requires a service key.`,
		Example: `
daybookctl issue-key --role anon
daybookctl issue-key --role service --ttl 720h
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("secret must not be empty")
			}
			if ttl < 0 {
				return errors.New("ttl must not be negative")
			}
			switch role {
			case auth.RoleAnon, auth.RoleService:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			key, err := auth.GenerateAccessKey(role, []byte(secret), ttl)
			if err != nil {
				return fmt.Errorf("sign key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", secret, "HMAC secret shared with daybookd")
	cmd.Flags().StringVar(&role, "role", role, "key role: anon or service")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "key lifetime, 0 for no expiry")

	topLevel.AddCommand(cmd)
}
