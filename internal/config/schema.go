package config

type fileSchema struct {
	Odoo   odooSchema   `toml:"odoo"`
	Server serverSchema `toml:"server"`
}

type odooSchema struct {
	URL         string `toml:"url"`
	Database    string `toml:"db"`
	Username    string `toml:"username"`
	Password    string `toml:"password,omitempty"`
	PasswordRef string `toml:"password_ref,omitempty"`
	Transport   string `toml:"transport,omitempty"`
	Timeout     string `toml:"timeout,omitempty"`
}

type serverSchema struct {
	Listen string `toml:"listen"`
}

type secretMode int

const (
	// secretOmit drops the password from the schema entirely.
	secretOmit secretMode = iota
	// secretRedact replaces a set password with a placeholder.
	secretRedact
	secretInclude
)

func toSchema(cfg Config, mode secretMode) fileSchema {
	creds := cfg.Credentials
	switch mode {
	case secretOmit:
		creds.Secret = ""
	case secretRedact:
		creds = creds.Redacted()
	}

	schema := fileSchema{
		Odoo: odooSchema{
			URL:         creds.ServiceURL,
			Database:    creds.Database,
			Username:    creds.Username,
			Password:    creds.Secret,
			PasswordRef: cfg.PasswordRef,
			Transport:   string(cfg.Transport),
		},
		Server: serverSchema{Listen: cfg.Listen},
	}
	if cfg.Timeout > 0 {
		schema.Odoo.Timeout = cfg.Timeout.String()
	}
	return schema
}
