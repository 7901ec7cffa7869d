package config

import (
	"fmt"
	"os"
	"strconv"
)

// EmailConfig holds the SMTP connection settings for the reminder
// dispatcher.
type EmailConfig struct {
	Host string
	Port int
	User string
	Pass string
}

// LoadEmailConfig reads the SMTP settings from the environment. All
// four variables are required; a missing one is a configuration error
// that makes the dispatcher unusable, while the rest of the API keeps
// serving.
func LoadEmailConfig() (*EmailConfig, error) {
	host := os.Getenv("EMAIL_HOST")
	portStr := os.Getenv("EMAIL_PORT")
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")

	if host == "" || portStr == "" || user == "" || pass == "" {
		return nil, fmt.Errorf("EMAIL_HOST, EMAIL_PORT, EMAIL_USER, and EMAIL_PASS must be set")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_PORT %q: %w", portStr, err)
	}

	return &EmailConfig{Host: host, Port: port, User: user, Pass: pass}, nil
}
