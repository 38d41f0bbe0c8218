package cli

import (
	"fmt"

	intconfig "amabackend/internal/config"
	"amabackend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var env intconfig.Env

var rootCmd = &cobra.Command{
	Use:   "amabackend",
	Short: "AMA list API server",
	Long: `Serves the AMA and users list API, runs schema migrations and compiles
list queries for inspection.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = intconfig.LoadEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		utils.InitLogger(env.LogLevel, env.LogFormat)
		if env.GinMode != "" {
			gin.SetMode(env.GinMode)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
