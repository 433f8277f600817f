package commands

import (
	"log"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the post schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, postRepo, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		if err := postRepo.Migrate(cmd.Context()); err != nil {
			return err
		}
		log.Printf("Post schema migrated (%s).", cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
