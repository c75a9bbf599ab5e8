package domain

import (
	"fmt"
	"strings"
)

type Credentials struct {
	ServiceURL string
	Database   string
	Username   string
	Secret     string
}

// Validate reports every missing field at once as a ConfigurationMissing failure.
func (c Credentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ServiceURL) == "" {
		missing = append(missing, "ODOO_URL")
	}
	if strings.TrimSpace(c.Database) == "" {
		missing = append(missing, "ODOO_DB")
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "ODOO_USERNAME")
	}
	if c.Secret == "" {
		missing = append(missing, "ODOO_PASSWORD")
	}
	if len(missing) == 0 {
		return nil
	}

	return NewFailure(FailureConfigurationMissing, "validate credentials", fmt.Errorf("%s not set", strings.Join(missing, ", ")))
}

func (c Credentials) Redacted() Credentials {
	if c.Secret != "" {
		c.Secret = "********"
	}
	return c
}
