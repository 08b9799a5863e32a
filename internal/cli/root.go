// Package cli wires configuration, infrastructure and services behind the
// findabuddy command.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RMvanderGaag/find-a-buddy/internal/infrastructure/config"
	"github.com/RMvanderGaag/find-a-buddy/pkg/logger"
)

const serviceName = "find-a-buddy"

var (
	cfg *config.Config
	log zerolog.Logger
)

type commandContextKey struct{}

type commandContext struct {
	correlationID string
	startedAt     time.Time
}

var rootCmd = &cobra.Command{
	Use:           "findabuddy",
	Short:         "find-a-buddy meetup service",
	Long:          "Matches coaches and pupils on shared topics and tracks their meetups.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		cfg = loaded
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.IsDevelopment(),
			Service: serviceName,
		})

		info := commandContext{correlationID: uuid.NewString(), startedAt: time.Now()}
		cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
		log.Debug().
			Str("command", cmd.CommandPath()).
			Str("correlation_id", info.correlationID).
			Msg("command start")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		log.Debug().
			Str("command", cmd.CommandPath()).
			Str("correlation_id", info.correlationID).
			Dur("duration", time.Since(info.startedAt)).
			Msg("command end")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
