package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grupo-estuda/study-backend/cmd/migrate"
	"github.com/grupo-estuda/study-backend/config"
	"github.com/grupo-estuda/study-backend/server"
)

var rootCmd = &cobra.Command{
	Use:   "study-backend",
	Short: "Grupo Estuda backend",
}

func GetRootCmd(config *config.Config) *cobra.Command {
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DB.User,
		config.DB.Password,
		config.DB.Host,
		config.DB.Port,
		config.DB.DBName,
		config.DB.SSLMode)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			server.RunServer(config)
		},
	})

	rootCmd.AddCommand(migrate.GetMigrateCmd(dbURL))

	return rootCmd
}
