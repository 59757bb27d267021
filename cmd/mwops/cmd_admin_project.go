package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mwops/mwops/usecase/project"
)

type projectSpec struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

func newCmdAdminProject() *cobra.Command {
	cmd := &cobra.Command{Use: "project", Short: "Manage Project resources", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdAdminProjectList(), newCmdAdminProjectGet(), newCmdAdminProjectCreate(), newCmdAdminProjectUpdate(), newCmdAdminProjectDelete())
	return cmd
}

func newCmdAdminProjectList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List projects", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildProjectUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.List(ctx, &uc.ListInput{})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, it := range out.Projects {
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
		return nil
	}}
}

func newCmdAdminProjectGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get a project", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildProjectUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Get(ctx, &uc.GetInput{ID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.Project)
	}}
}

func newCmdAdminProjectCreate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "create", Short: "Create a project", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildProjectUseCase(cmd)
		if err != nil {
			return err
		}
		var spec projectSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Create(ctx, &uc.CreateInput{Name: spec.Name, Title: spec.Title})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.Project)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdAdminProjectUpdate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "update <id>", Short: "Update a project", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildProjectUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var spec struct {
			Name  *string `yaml:"name"`
			Title *string `yaml:"title"`
		}
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Update(ctx, &uc.UpdateInput{ID: id, Name: spec.Name, Title: spec.Title})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.Project)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdAdminProjectDelete() *cobra.Command {
	return &cobra.Command{Use: "delete <id>", Short: "Delete a project", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildProjectUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		return u.Delete(ctx, &uc.DeleteInput{ID: id})
	}}
}
