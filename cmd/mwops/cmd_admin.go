package main

import (
	"github.com/spf13/cobra"
)

// newCmdAdmin groups the CRUD surface over the relational store.
func newCmdAdmin() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage stored resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newCmdAdminProject())
	cmd.AddCommand(newCmdAdminCluster())
	cmd.AddCommand(newCmdAdminS3Storage())
	cmd.AddCommand(newCmdAdminRotateSecrets())
	return cmd
}
