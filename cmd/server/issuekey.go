package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/catalog/internal/auth"
	"github.com/mmynk/catalog/internal/catalog"
)

func issueKeyCmd() *cobra.Command {
	var name, username, password string

	cmd := &cobra.Command{
		Use:   "issue-key",
		Short: "Issue an API key",
		Long:  "Register a credential and print its API key. The key is shown once and not stored in plain text anywhere else.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			issuer := auth.NewIssuer(store, auth.WithBcryptCost(cfg.Auth.BcryptCost))
			svc := catalog.NewService(store, issuer, nil)

			key, err := svc.IssueKey(ctx, name, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name of the key holder")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password (8 to 72 bytes)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
