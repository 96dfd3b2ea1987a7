package ctl

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/murillocortez/olhar-autoral/internal/server/auth"
)

func newTokenCommand(opts *globalOptions) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token for the /api/admin endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = cfg.Admin.TokenTTL.Duration
			}

			token, err := auth.GenerateToken(subject, auth.RoleAdmin, []byte(cfg.Admin.Secret), ttl)
			if err != nil {
				return fmt.Errorf("error generating token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default admin.token_ttl)")

	return cmd
}
