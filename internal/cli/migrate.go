package cli

import (
	"context"

	"github.com/spf13/cobra"

	mongodb "github.com/RMvanderGaag/find-a-buddy/internal/infrastructure/db/mongo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create MongoDB indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer st.close(context.Background())

		return ensureIndexes(cmd.Context(), st)
	},
}

func ensureIndexes(ctx context.Context, st *stores) error {
	if err := mongodb.EnsureIndexes(ctx, st.db); err != nil {
		return err
	}
	log.Info().Msg("indexes ensured")
	return nil
}
