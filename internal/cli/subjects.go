package cli

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/models"
	"gorm.io/gorm"
)

var errSubjectExists = errors.New("subject already exists")

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", fmt.Errorf("invalid email address: %w", err)
	}
	return normalized, nil
}

// RunAddSubjectCommand creates a subject with default cycle durations inside
// teamName, creating the team on first use.
func RunAddSubjectCommand(database *gorm.DB, out io.Writer, email string, teamName string) (models.User, error) {
	normalizedEmail, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return models.User{}, errors.New("team is required")
	}

	user := models.User{
		Email:                normalizedEmail,
		DurationPeriod:       models.DefaultDurationPeriod,
		DurationMenstruation: models.DefaultDurationMenstruation,
	}
	err = db.RunInTransaction(database, func(repos *db.Repositories) error {
		if _, found, err := repos.Users.FindByEmail(normalizedEmail); err != nil {
			return fmt.Errorf("load user: %w", err)
		} else if found {
			return fmt.Errorf("%w: %s", errSubjectExists, normalizedEmail)
		}

		team, found, err := repos.Teams.FindByName(teamName)
		if err != nil {
			return fmt.Errorf("load team: %w", err)
		}
		if !found {
			team = models.Team{Name: teamName}
			if err := repos.Teams.Create(&team); err != nil {
				return fmt.Errorf("create team: %w", err)
			}
		}

		user.TeamID = &team.ID
		if err := repos.Users.Create(&user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	fmt.Fprintf(out, "Subject %s created (user id %d, team %q id %d)\n", user.Email, user.ID, teamName, *user.TeamID)
	return user, nil
}
