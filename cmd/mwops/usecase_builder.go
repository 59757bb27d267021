package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwops/mwops/adapters/kube"
	"github.com/mwops/mwops/config/mwenv"
	"github.com/mwops/mwops/internal/render"
	"github.com/mwops/mwops/internal/secrets"
	"github.com/mwops/mwops/usecase/cluster"
	"github.com/mwops/mwops/usecase/platform"
	"github.com/mwops/mwops/usecase/project"
	"github.com/mwops/mwops/usecase/s3storage"
)

// buildCipher constructs the symmetric cipher from MWOPS_SECRET_KEY.
// Commands that never touch a redacted field pass required=false and get a
// nil cipher when the key is absent.
func buildCipher(required bool) (*secrets.Cipher, error) {
	key := os.Getenv(mwenv.SecretKeyEnvKey)
	if key == "" {
		if required {
			return nil, fmt.Errorf("%s is required", mwenv.SecretKeyEnvKey)
		}
		return nil, nil
	}
	return secrets.NewCipher(key)
}

// buildPlatformUseCase wires the full platform orchestrator.
func buildPlatformUseCase(cmd *cobra.Command) (*platform.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	cipher, err := buildCipher(false)
	if err != nil {
		return nil, err
	}
	templateRoot := os.Getenv(mwenv.TemplateRootEnvKey)
	if templateRoot == "" {
		templateRoot = "resources/platform"
	}
	return platform.New(&platform.Options{
		Repos:    repos,
		Gateway:  &kube.Gateway{Options: &kube.Options{UserAgent: "mwops/" + version}},
		Renderer: render.NewRenderer(templateRoot),
		Cipher:   cipher,
	})
}

// buildProjectUseCase creates the project use case.
func buildProjectUseCase(cmd *cobra.Command) (*project.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &project.UseCase{Repos: &project.Repos{Project: repos.Project}}, nil
}

// buildClusterUseCase creates the cluster use case.
func buildClusterUseCase(cmd *cobra.Command) (*cluster.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &cluster.UseCase{Repos: &cluster.Repos{Cluster: repos.Cluster}}, nil
}

// buildS3StorageUseCase creates the object-storage use case. It always
// needs the cipher for the secret-key field.
func buildS3StorageUseCase(cmd *cobra.Command) (*s3storage.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	cipher, err := buildCipher(true)
	if err != nil {
		return nil, err
	}
	return &s3storage.UseCase{Repos: &s3storage.Repos{S3Storage: repos.S3Storage}, Cipher: cipher}, nil
}
