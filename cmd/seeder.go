package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	seedAdminName     string
	seedAdminEmail    string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a bootstrap admin user",
	Long:  `Seed the database with the initial admin account needed to administer users, groups and permits.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		var exists int
		err = db.Get(&exists, "SELECT 1 FROM users WHERE email = $1", seedAdminEmail)
		if err == nil {
			fmt.Println("admin user already exists:", seedAdminEmail)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		now := time.Now().UTC()
		_, err = db.Exec(
			`INSERT INTO users (id, name, password, email, role, date_created, date_activated)
			 VALUES ($1, $2, $3, $4, 'admin', $5, $5)`,
			uuid.New(), seedAdminName, string(hash), seedAdminEmail, now,
		)
		if err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}

		fmt.Println("seeded admin user:", seedAdminEmail)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminName, "name", "admin", "admin user name")
	seedCmd.Flags().StringVar(&seedAdminEmail, "email", "admin@docvault.local", "admin user email")
	seedCmd.Flags().StringVar(&seedAdminPassword, "password", "", "admin user password (required)")
	_ = seedCmd.MarkFlagRequired("password")
}
