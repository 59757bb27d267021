package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwops/mwops/domain/model"
	uc "github.com/mwops/mwops/usecase/platform"
)

type platformSpec struct {
	Name      string `yaml:"name" json:"name"`
	Title     string `yaml:"title" json:"title"`
	ProjectID int64  `yaml:"projectID" json:"project_id"`
	ClusterID int64  `yaml:"clusterID" json:"cluster_id"`

	Instances   int    `yaml:"instances" json:"instances"`
	StorageSize string `yaml:"storageSize" json:"storage_size"`
	Image       string `yaml:"image" json:"image"`

	CPURequest    string `yaml:"cpuRequest" json:"cpu_request"`
	CPULimit      string `yaml:"cpuLimit" json:"cpu_limit"`
	MemoryRequest string `yaml:"memoryRequest" json:"memory_request"`
	MemoryLimit   string `yaml:"memoryLimit" json:"memory_limit"`

	BackupEnabled     bool   `yaml:"backupEnabled" json:"backup_enabled"`
	BackupDestination string `yaml:"backupDestination" json:"backup_destination"`
	BackupRetention   string `yaml:"backupRetention" json:"backup_retention"`
	S3StorageID       int64  `yaml:"s3StorageID" json:"s3_storage_id"`
}

type platformPatchSpec struct {
	Name              *string `yaml:"name"`
	Title             *string `yaml:"title"`
	ProjectID         *int64  `yaml:"projectID"`
	ClusterID         *int64  `yaml:"clusterID"`
	Instances         *int    `yaml:"instances"`
	StorageSize       *string `yaml:"storageSize"`
	Image             *string `yaml:"image"`
	CPURequest        *string `yaml:"cpuRequest"`
	CPULimit          *string `yaml:"cpuLimit"`
	MemoryRequest     *string `yaml:"memoryRequest"`
	MemoryLimit       *string `yaml:"memoryLimit"`
	BackupEnabled     *bool   `yaml:"backupEnabled"`
	BackupDestination *string `yaml:"backupDestination"`
	BackupRetention   *string `yaml:"backupRetention"`
	S3StorageID       *int64  `yaml:"s3StorageID"`
}

func (s *platformPatchSpec) toPatch() *model.PostgresPlatformPatch {
	return &model.PostgresPlatformPatch{
		Name: s.Name, Title: s.Title, ProjectID: s.ProjectID, ClusterID: s.ClusterID,
		Instances: s.Instances, StorageSize: s.StorageSize, Image: s.Image,
		CPURequest: s.CPURequest, CPULimit: s.CPULimit, MemoryRequest: s.MemoryRequest, MemoryLimit: s.MemoryLimit,
		BackupEnabled: s.BackupEnabled, BackupDestination: s.BackupDestination, BackupRetention: s.BackupRetention, S3StorageID: s.S3StorageID,
	}
}

func newCmdPlatform() *cobra.Command {
	cmd := &cobra.Command{Use: "platform", Short: "Manage PostgreSQL platforms", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdPlatformList(), newCmdPlatformGet(), newCmdPlatformCreate(), newCmdPlatformUpdate(), newCmdPlatformDelete())
	cmd.AddCommand(newCmdPlatformApply(), newCmdPlatformDecommission(), newCmdPlatformPoll())
	cmd.AddCommand(newCmdPlatformState(), newCmdPlatformActions(), newCmdPlatformRun(), newCmdPlatformImages())
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCmdPlatformList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List platforms", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
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
		for _, it := range out.Platforms {
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
		return nil
	}}
}

func newCmdPlatformGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get a platform", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
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
		return printJSON(cmd, out.Platform)
	}}
}

func newCmdPlatformCreate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "create", Short: "Create a platform", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		var spec platformSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Create(ctx, &uc.CreateInput{
			Name: spec.Name, Title: spec.Title, ProjectID: spec.ProjectID, ClusterID: spec.ClusterID,
			Instances: spec.Instances, StorageSize: spec.StorageSize, Image: spec.Image,
			CPURequest: spec.CPURequest, CPULimit: spec.CPULimit, MemoryRequest: spec.MemoryRequest, MemoryLimit: spec.MemoryLimit,
			BackupEnabled: spec.BackupEnabled, BackupDestination: spec.BackupDestination, BackupRetention: spec.BackupRetention, S3StorageID: spec.S3StorageID,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, out.Platform)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdPlatformUpdate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "update <id>", Short: "Update a platform", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var spec platformPatchSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Update(ctx, &uc.UpdateInput{ID: id, Patch: spec.toPatch()})
		if err != nil {
			return err
		}
		return printJSON(cmd, out.Platform)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdPlatformDelete() *cobra.Command {
	return &cobra.Command{Use: "delete <id>", Short: "Delete a platform", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
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

func newCmdPlatformApply() *cobra.Command {
	return &cobra.Command{Use: "apply <id>", Short: "Deploy the platform's resources to its cluster", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
		defer cancel()
		out, err := u.Apply(ctx, &uc.ApplyInput{ID: id})
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	}}
}

func newCmdPlatformDecommission() *cobra.Command {
	return &cobra.Command{Use: "decommission <id>", Short: "Tear down the platform's cluster resources", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
		defer cancel()
		out, err := u.Decommission(ctx, &uc.DecommissionInput{ID: id})
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	}}
}

func newCmdPlatformPoll() *cobra.Command {
	return &cobra.Command{Use: "poll <id>", Short: "Refresh the platform's observed state once", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		out, err := u.Poll(ctx, &uc.PollInput{ID: id})
		if err != nil {
			return err
		}
		return printJSON(cmd, out.State)
	}}
}

func newCmdPlatformState() *cobra.Command {
	cmd := &cobra.Command{Use: "state", Short: "Inspect or patch a platform's state", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdPlatformStateGet(), newCmdPlatformStateUpdate())
	return cmd
}

func newCmdPlatformStateGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get a platform's state", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.GetState(ctx, &uc.GetStateInput{ID: id})
		if err != nil {
			return err
		}
		return printJSON(cmd, out.State)
	}}
}

func newCmdPlatformStateUpdate() *cobra.Command {
	var active bool
	var message string
	cmd := &cobra.Command{Use: "update <id>", Short: "Patch a platform's state", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in := &uc.UpdateStateInput{ID: id}
		if cmd.Flags().Changed("active") {
			in.Active = &active
		}
		if cmd.Flags().Changed("message") {
			in.Message = &message
		}
		// Flipping active drives an Apply or Decommission, so allow for it.
		ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
		defer cancel()
		out, err := u.UpdateState(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(cmd, out.State)
	}}
	cmd.Flags().BoolVar(&active, "active", false, "Set the desired active flag")
	cmd.Flags().StringVar(&message, "message", "", "Set the status message")
	return cmd
}

func newCmdPlatformActions() *cobra.Command {
	return &cobra.Command{Use: "actions <id>", Short: "List the actions available for a platform", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.ListActions(ctx, &uc.ListActionsInput{ID: id})
		if err != nil {
			return err
		}
		return printJSON(cmd, out.Actions)
	}}
}

func newCmdPlatformRun() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "run <id> <action>", Short: "Execute a platform action", Args: cobra.ExactArgs(2), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		actionArgs := map[string]any{}
		if file != "" {
			if err := readSpec(cmd, file, &actionArgs); err != nil {
				return err
			}
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		out, err := u.ExecuteAction(ctx, &uc.ExecuteActionInput{ID: id, Name: args[1], Args: actionArgs})
		if err != nil {
			return err
		}
		return printJSON(cmd, out.Result)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Action arguments (YAML), - for stdin")
	return cmd
}

func newCmdPlatformImages() *cobra.Command {
	return &cobra.Command{Use: "images", Short: "List the shipped image catalog", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.ListImages(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, out.Images)
	}}
}
