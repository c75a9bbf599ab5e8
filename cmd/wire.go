package cmd

import (
	"context"
	"fmt"
	"net/http"

	partnersrender "github.com/bnema/odoo-partners-cli/internal/adapters/render/partners"
	"github.com/bnema/odoo-partners-cli/internal/adapters/rpc/jsonrpc"
	"github.com/bnema/odoo-partners-cli/internal/adapters/rpc/xmlrpc"
	passstore "github.com/bnema/odoo-partners-cli/internal/adapters/secrets/pass"
	"github.com/bnema/odoo-partners-cli/internal/application"
	"github.com/bnema/odoo-partners-cli/internal/config"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/bnema/odoo-partners-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg             *config.Config
	httpClient      *http.Client
	secrets         ports.SecretSource
	partnerRenderer func([]domain.Partner, partnersrender.RenderOptions) (string, error)
	transportFlag   string

	// session is shared by every remote call of one process invocation.
	session *domain.Session
	client  *partnerClient
}

type partnerClient struct {
	auth     *application.Authenticator
	partners *application.PartnerService
}

func wireApp() (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return &app{
		cfg:             cfg,
		httpClient:      http.DefaultClient,
		secrets:         passstore.NewStore(),
		partnerRenderer: partnersrender.Render,
	}, nil
}

// transport resolves --transport, then the configured transport, then fallback.
func (a *app) transport(fallback config.Transport) (config.Transport, error) {
	flagValue, err := config.ParseTransport(a.transportFlag)
	if err != nil {
		return "", err
	}
	if flagValue != "" {
		return flagValue, nil
	}
	return a.cfg.TransportOr(fallback), nil
}

func (a *app) newCodec(transport config.Transport) ports.Codec {
	if transport == config.TransportJSONRPC {
		return jsonrpc.Codec{
			BaseURL:        a.cfg.Credentials.ServiceURL,
			HTTPClient:     a.httpClient,
			RequestTimeout: a.cfg.Timeout,
		}
	}
	return xmlrpc.Codec{
		BaseURL:        a.cfg.Credentials.ServiceURL,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.Timeout,
	}
}

// credentials fills in the password from the secret source when only a
// password reference is configured.
func (a *app) credentials(ctx context.Context) (domain.Credentials, error) {
	creds := a.cfg.Credentials
	if creds.Secret != "" || a.cfg.PasswordRef == "" {
		return creds, nil
	}

	secret, err := a.secrets.Get(ctx, a.cfg.PasswordRef)
	if err != nil {
		return domain.Credentials{}, domain.NewFailure(domain.FailureConfigurationMissing, "resolve ODOO_PASSWORD_REF", err)
	}
	creds.Secret = secret
	return creds, nil
}

func (a *app) newPartnerClient(ctx context.Context, transport config.Transport) (*partnerClient, error) {
	creds, err := a.credentials(ctx)
	if err != nil {
		return nil, err
	}

	codec := a.newCodec(transport)
	return &partnerClient{
		auth:     application.NewAuthenticator(creds, codec),
		partners: application.NewPartnerService(application.NewGateway(codec)),
	}, nil
}

func (a *app) partnerClient(ctx context.Context) (*partnerClient, error) {
	if a.client != nil {
		return a.client, nil
	}
	transport, err := a.transport(config.TransportXMLRPC)
	if err != nil {
		return nil, err
	}
	client, err := a.newPartnerClient(ctx, transport)
	if err != nil {
		return nil, err
	}
	a.client = client
	return a.client, nil
}

// authenticated returns the partner service together with the process-wide
// session, authenticating on first use.
func (a *app) authenticated(ctx context.Context) (*application.PartnerService, domain.Session, error) {
	client, err := a.partnerClient(ctx)
	if err != nil {
		return nil, domain.Session{}, err
	}

	if a.session == nil {
		session, err := client.auth.Authenticate(ctx)
		if err != nil {
			return nil, domain.Session{}, err
		}
		a.session = &session
	}

	return client.partners, *a.session, nil
}
