// Command-line tool to clean the database by dropping every table the service migrate.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"GradLinkUp-backend/internal/config"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/model"
)

func main() {
	yes := flag.Bool("yes", false, "skip confirmation prompt")
	flag.Parse()

	log := logging.Log

	fmt.Println("⚠️ WARNING: This command will DROP users, profiles, companies, internships, and applications tables.")
	if !*yes {
		fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			log.WithError(err).Fatal("failed to read input")
		}
		if strings.TrimSpace(strings.ToLower(input)) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("database failed to initialize")
	}
	defer db.Close()

	// reverse order so dependent tables go first
	tables := make([]interface{}, 0, len(model.MigrateAble))
	for i := len(model.MigrateAble) - 1; i >= 0; i-- {
		tables = append(tables, model.MigrateAble[i])
	}
	if err := db.Migrator().DropTable(tables...); err != nil {
		log.WithError(err).Fatal("failed to drop tables")
	}

	fmt.Println("✅ All tables dropped successfully.")
}
