package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mwops/mwops/usecase/s3storage"
)

type s3StorageSpec struct {
	Name        string `yaml:"name" json:"name"`
	Region      string `yaml:"region" json:"region"`
	EndpointURL string `yaml:"endpointURL" json:"endpoint_url"`
	AccessKey   string `yaml:"accessKey" json:"access_key"`
	SecretKey   string `yaml:"secretKey" json:"secret_key"`
}

func newCmdAdminS3Storage() *cobra.Command {
	cmd := &cobra.Command{Use: "s3storage", Short: "Manage S3Storage resources", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdAdminS3StorageList(), newCmdAdminS3StorageGet(), newCmdAdminS3StorageCreate(), newCmdAdminS3StorageUpdate(), newCmdAdminS3StorageDelete())
	return cmd
}

func newCmdAdminS3StorageList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List object-storage configs", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildS3StorageUseCase(cmd)
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
		for _, it := range out.S3Storages {
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
		return nil
	}}
}

func newCmdAdminS3StorageGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get an object-storage config", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildS3StorageUseCase(cmd)
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
		return enc.Encode(out.S3Storage)
	}}
}

func newCmdAdminS3StorageCreate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "create", Short: "Register an object-storage config", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildS3StorageUseCase(cmd)
		if err != nil {
			return err
		}
		var spec s3StorageSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Create(ctx, &uc.CreateInput{Name: spec.Name, Region: spec.Region, EndpointURL: spec.EndpointURL, AccessKey: spec.AccessKey, SecretKey: spec.SecretKey})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.S3Storage)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdAdminS3StorageUpdate() *cobra.Command {
	var file string
	cmd := &cobra.Command{Use: "update <id>", Short: "Update an object-storage config", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildS3StorageUseCase(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var spec struct {
			Name        *string `yaml:"name"`
			Region      *string `yaml:"region"`
			EndpointURL *string `yaml:"endpointURL"`
			AccessKey   *string `yaml:"accessKey"`
			SecretKey   *string `yaml:"secretKey"`
		}
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Update(ctx, &uc.UpdateInput{ID: id, Name: spec.Name, Region: spec.Region, EndpointURL: spec.EndpointURL, AccessKey: spec.AccessKey, SecretKey: spec.SecretKey})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.S3Storage)
	}}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML), - for stdin")
	return cmd
}

func newCmdAdminS3StorageDelete() *cobra.Command {
	return &cobra.Command{Use: "delete <id>", Short: "Delete an object-storage config", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildS3StorageUseCase(cmd)
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
