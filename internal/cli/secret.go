package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/gravida/internal/security"
)

func RunGenerateSecretCommand(out io.Writer, length int) (string, error) {
	secret, err := security.NewSecretKey(length)
	if err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	fmt.Fprintf(out, "SECRET_KEY=%s\n", secret)
	return secret, nil
}
