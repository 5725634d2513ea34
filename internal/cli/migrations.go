package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/gravida/internal/db"
	"gorm.io/gorm"
)

// RunMigrateCommand reports the applied schema versions. Opening the database
// has already applied any pending migration.
func RunMigrateCommand(database *gorm.DB, out io.Writer) error {
	applied, err := db.AppliedMigrations(database)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%-8s %-32s %s\n", "VERSION", "NAME", "APPLIED AT")
	for _, migration := range applied {
		fmt.Fprintf(out, "%-8s %-32s %s\n", migration.Version, migration.Name, migration.AppliedAt)
	}
	return nil
}
