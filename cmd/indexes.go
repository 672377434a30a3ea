package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HSouheill/sower_backend/config"
	"github.com/HSouheill/sower_backend/repositories"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(viper.GetViper())

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		client, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		return repositories.EnsureIndexes(ctx, config.GetDatabase(client, cfg))
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
