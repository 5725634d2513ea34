package db

import (
	"fmt"

	"gorm.io/gorm"
)

type Repositories struct {
	Users  *UserRepository
	Teams  *TeamRepository
	Events *CycleEventRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:  NewUserRepository(database),
		Teams:  NewTeamRepository(database),
		Events: NewCycleEventRepository(database),
	}
}

// RunInTransaction hands fn repositories bound to a single transaction. The
// transaction commits only when fn returns nil; errors and panics roll back.
func RunInTransaction(database *gorm.DB, fn func(repos *Repositories) error) error {
	tx := database.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if recovered := recover(); recovered != nil {
			tx.Rollback()
			panic(recovered)
		}
	}()

	if err := fn(NewRepositories(tx)); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rollbackErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
