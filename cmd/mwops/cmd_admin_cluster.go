package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mwops/mwops/usecase/cluster"
)

type clusterSpec struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	// Kubeconfig holds the config inline; KubeconfigFile loads it from disk.
	Kubeconfig     string `yaml:"kubeconfig,omitempty" json:"kubeconfig,omitempty"`
	KubeconfigFile string `yaml:"kubeconfigFile,omitempty" json:"kubeconfigFile,omitempty"`
}

func (s *clusterSpec) resolveKubeconfig() (string, error) {
	if s.KubeconfigFile == "" {
		return s.Kubeconfig, nil
	}
	data, err := os.ReadFile(s.KubeconfigFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newCmdAdminCluster() *cobra.Command {
	cmd := &cobra.Command{Use: "cluster", Short: "Manage Cluster resources", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdAdminClusterList(), newCmdAdminClusterGet(), newCmdAdminClusterCreate(), newCmdAdminClusterUpdate(), newCmdAdminClusterDelete())
	return cmd
}

func newCmdAdminClusterList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List clusters", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
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
		for _, it := range out.Clusters {
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
		return nil
	}}
}

func newCmdAdminClusterGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get a cluster", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
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
		return enc.Encode(out.Cluster)
	}}
}

func newCmdAdminClusterCreate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "create", Short: "Register a cluster", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
		if err != nil {
			return err
		}
		var spec clusterSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		kubeconfig, err := spec.resolveKubeconfig()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Create(ctx, &uc.CreateInput{Name: spec.Name, Type: spec.Type, Kubeconfig: kubeconfig})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.Cluster)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdAdminClusterUpdate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "update <id>", Short: "Update a cluster", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var spec struct {
			Name       *string `yaml:"name"`
			Type       *string `yaml:"type"`
			Kubeconfig *string `yaml:"kubeconfig"`
		}
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Update(ctx, &uc.UpdateInput{ID: id, Name: spec.Name, Type: spec.Type, Kubeconfig: spec.Kubeconfig})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.Cluster)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdAdminClusterDelete() *cobra.Command {
	return &cobra.Command{Use: "delete <id>", Short: "Delete a cluster", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
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
