package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/gravida/internal/api"
	"github.com/terraincognita07/gravida/internal/db"
	"gorm.io/gorm"
)

// RunIssueTokenCommand prints a bearer token for the subject registered under
// email, scoped to the subject's team.
func RunIssueTokenCommand(database *gorm.DB, out io.Writer, secretKey string, email string, ttl time.Duration, now time.Time) (string, error) {
	normalizedEmail, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	user, found, err := db.NewUserRepository(database).FindByEmail(normalizedEmail)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if !found {
		return "", fmt.Errorf("user %s not found", normalizedEmail)
	}
	if user.TeamID == nil {
		return "", fmt.Errorf("user %s has no team", normalizedEmail)
	}

	token, err := api.BuildToken([]byte(secretKey), user.ID, *user.TeamID, ttl, now)
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	fmt.Fprintln(out, token)
	return token, nil
}
