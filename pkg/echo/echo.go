// Package echo implements the EUDR echo service client, used to verify
// connectivity and credentials before submitting real statements.
package echo

import (
	"context"
	"fmt"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/soap"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/transport"
)

// Namespace is the echo service schema namespace.
const Namespace = "http://ec.europa.eu/tracesnt/certificate/eudr/echo/v1"

// Service is the echo service client.
type Service struct {
	endpoint  string
	clientID  string
	creds     soap.Credentials
	transport *transport.Client
	log       logging.Logger
	version   string
}

// Option configures a Service.
type Option func(*Service)

// WithTransport sets the transport client. A default one is created when
// absent.
func WithTransport(tc *transport.Client) Option {
	return func(s *Service) { s.transport = tc }
}

// WithLogger sets the service logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithVersion selects the API version (default v1).
func WithVersion(version string) Option {
	return func(s *Service) { s.version = version }
}

// NewService resolves the echo endpoint from cfg and returns a client.
func NewService(cfg endpoint.Config, opts ...Option) (*Service, error) {
	s := &Service{version: endpoint.VersionV1}
	for _, opt := range opts {
		opt(s)
	}

	resolved, err := endpoint.ValidateAndGenerateEndpoint(cfg, endpoint.ServiceEcho, s.version)
	if err != nil {
		return nil, err
	}

	s.endpoint = resolved.Endpoint
	s.clientID = resolved.WebServiceClientID
	s.creds = soap.Credentials{Username: resolved.Username, Password: resolved.Password}
	if s.transport == nil {
		s.transport = transport.NewClient(nil)
	}
	if s.log == nil {
		s.log = logging.NewDefault()
	}

	return s, nil
}

// Endpoint returns the resolved endpoint URL.
func (s *Service) Endpoint() string {
	return s.endpoint
}

// Test round-trips query through the echo service and returns the status
// reported by the server.
func (s *Service) Test(ctx context.Context, query string) (string, error) {
	env := soap.NewEnvelope()
	env.DeclareNamespace("v1", Namespace)
	env.AddSecurity(soap.SecurityOptions{Credentials: s.creds})
	if s.clientID != "" {
		env.AddClientID(s.clientID)
	}

	req := env.Body().CreateElement("v1:EudrEchoRequest")
	req.CreateElement("v1:query").SetText(query)

	data, err := env.Bytes()
	if err != nil {
		return "", err
	}

	action, _ := endpoint.SOAPAction(endpoint.ServiceEcho)
	s.log.Debug("echo request", "endpoint", s.endpoint)

	respBody, err := s.transport.Call(ctx, s.endpoint, action, data)
	if err != nil {
		return "", fmt.Errorf("echo request failed: %w", err)
	}

	doc, err := soap.Parse(respBody)
	if err != nil {
		return "", err
	}

	status := soap.ElementText(doc.Root(), "status")
	if status == "" {
		return "", fmt.Errorf("echo response contains no status element")
	}
	return status, nil
}
