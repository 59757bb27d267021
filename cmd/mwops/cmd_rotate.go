package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwops/mwops/config/mwenv"
	"github.com/mwops/mwops/internal/logging"
	"github.com/mwops/mwops/internal/secrets"
)

// newCmdAdminRotateSecrets re-encrypts every stored secret from the old
// master key to the current one. Rows that fail to decrypt under the old
// key are logged and left untouched so a partial rotation never destroys
// data.
func newCmdAdminRotateSecrets() *cobra.Command {
	var oldKey string
	cmd := &cobra.Command{Use: "rotate-secrets", Short: "Re-encrypt stored secrets under a new master key", RunE: func(cmd *cobra.Command, args []string) error {
		if oldKey == "" {
			oldKey = os.Getenv(mwenv.OldSecretKeyEnvKey)
		}
		if oldKey == "" {
			return fmt.Errorf("old key is required (--old-key or %s)", mwenv.OldSecretKeyEnvKey)
		}
		oldCipher, err := secrets.NewCipher(oldKey)
		if err != nil {
			return fmt.Errorf("old key: %w", err)
		}
		newCipher, err := buildCipher(true)
		if err != nil {
			return err
		}
		repos, err := buildRepos(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		log := logging.FromContext(ctx)

		rotated, skipped := 0, 0
		storages, err := repos.S3Storage.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range storages {
			if s.SecretKey == "" {
				continue
			}
			token, err := secrets.ReEncrypt(oldCipher, newCipher, s.SecretKey)
			if err != nil {
				log.Warnf(ctx, "rotate: s3storage %d (%s): %v", s.ID, s.Name, err)
				skipped++
				continue
			}
			s.SecretKey = token
			if err := repos.S3Storage.Update(ctx, s); err != nil {
				return fmt.Errorf("s3storage %d: %w", s.ID, err)
			}
			rotated++
		}

		platforms, err := repos.Platform.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range platforms {
			st, err := repos.State.Load(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("platform %d state: %w", p.ID, err)
			}
			if st == nil || st.DBPass == "" {
				continue
			}
			token, err := secrets.ReEncrypt(oldCipher, newCipher, st.DBPass)
			if err != nil {
				log.Warnf(ctx, "rotate: platform %d (%s) db_pass: %v", p.ID, p.Name, err)
				skipped++
				continue
			}
			st.DBPass = token
			if err := repos.State.Upsert(ctx, st); err != nil {
				return fmt.Errorf("platform %d state: %w", p.ID, err)
			}
			rotated++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "rotated %d secrets, skipped %d\n", rotated, skipped)
		return nil
	}}
	cmd.Flags().StringVar(&oldKey, "old-key", "", "Previous master key (env "+mwenv.OldSecretKeyEnvKey+")")
	return cmd
}
