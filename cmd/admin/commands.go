package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/inclusive-studai/config"
	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
	"github.com/oksasatya/inclusive-studai/internal/infrastructure/localstore"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

type slotOpener func(ctx context.Context) (repository.KeyValueSlot, func(), error)

func redisFor(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func newRootCmd(open slotOpener, key string, logger *logrus.Logger) *cobra.Command {
	if key == "" {
		key = localstore.DefaultStorageKey
	}
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Inspect and reset the Inclusive StudAI snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&key, "key", key, "slot key holding the snapshot")
	root.AddCommand(newSeedCmd(open, &key, logger), newDumpCmd(open, &key, logger))
	return root
}

func newSeedCmd(open slotOpener, key *string, logger *logrus.Logger) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default seed to the slot",
		Long:  "Writes the default users, appointments, courses and metrics. An existing snapshot is kept unless --force is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, closeFn, err := open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if !force {
				_, exists, err := s.Get(ctx, *key)
				if err != nil {
					return fmt.Errorf("check existing snapshot: %w", err)
				}
				if exists {
					return fmt.Errorf("snapshot %q already exists, use --force to overwrite", *key)
				}
			}
			raw, err := localstore.EncodeSnapshot(localstore.DefaultSnapshot())
			if err != nil {
				return err
			}
			if err := s.Set(ctx, *key, raw); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			helpers.LogInfo(logger, "snapshot seeded", logrus.Fields{"key": *key})
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", *key)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing snapshot")
	return cmd
}

func newDumpCmd(open slotOpener, key *string, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the snapshot the service would load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, closeFn, err := open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			st, report := localstore.Open(ctx, s, logger, localstore.WithStorageKey(*key))
			if report.Err != nil {
				helpers.LogWarn(logger, "persisted snapshot unusable", report.Err, logrus.Fields{"key": *key})
			}
			raw, err := localstore.EncodeSnapshot(st.Snapshot())
			if err != nil {
				return err
			}
			var out bytes.Buffer
			if err := json.Indent(&out, []byte(raw), "", "  "); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", report.Source)
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
}
