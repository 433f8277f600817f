package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "blogcms",
	Short: "Blog CMS - list, write, edit and delete blog posts",
	Long: `Blog CMS serves server-rendered pages for managing blog posts.

Configuration comes from the environment (or a .env file):
  PORT, ENV, DB_DRIVER (sqlite|postgres|mongo), DATABASE_URL,
  MONGO_URI, MONGO_DATABASE, SECRET_KEY, FORM_TOKEN_TTL`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "Port to listen on (overrides PORT)")
}
