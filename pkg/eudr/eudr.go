// Package eudr bundles the echo, retrieval, and submission service
// clients behind a single configuration.
package eudr

import (
	"github.com/mfrntic/eudr-api-client-sub001/pkg/echo"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/retrieval"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/submission"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/transport"
)

// Config configures a Client. Endpoints are generated from
// WebServiceClientID unless overridden per service.
type Config struct {
	Username           string
	Password           string
	WebServiceClientID string

	// Per-service endpoint overrides for custom deployments.
	EchoEndpoint       string
	RetrievalEndpoint  string
	SubmissionEndpoint string

	// Versions default to v1 for echo and retrieval and v2 for
	// submission.
	EchoVersion       string
	RetrievalVersion  string
	SubmissionVersion string

	// Transport tunes TLS, timeouts, and retries; nil uses defaults.
	Transport *transport.Config
	// Logger defaults to the environment-configured console logger.
	Logger logging.Logger
	// Metrics, when set, records request metrics for all services.
	Metrics *transport.Metrics
}

// Client exposes the three EUDR services.
type Client struct {
	Echo       *echo.Service
	Retrieval  *retrieval.Service
	Submission *submission.Service
}

// New builds a Client sharing one transport across the services.
func New(cfg Config) (*Client, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.NewDefault()
	}

	tOpts := []transport.Option{transport.WithLogger(log)}
	if cfg.Metrics != nil {
		tOpts = append(tOpts, transport.WithMetrics(cfg.Metrics))
	}
	tc := transport.NewClient(cfg.Transport, tOpts...)

	endpointCfg := func(override string) endpoint.Config {
		return endpoint.Config{
			Endpoint:           override,
			WebServiceClientID: cfg.WebServiceClientID,
			Username:           cfg.Username,
			Password:           cfg.Password,
		}
	}

	echoOpts := []echo.Option{echo.WithTransport(tc), echo.WithLogger(log)}
	if cfg.EchoVersion != "" {
		echoOpts = append(echoOpts, echo.WithVersion(cfg.EchoVersion))
	}
	echoSvc, err := echo.NewService(endpointCfg(cfg.EchoEndpoint), echoOpts...)
	if err != nil {
		return nil, err
	}

	retrOpts := []retrieval.Option{retrieval.WithTransport(tc), retrieval.WithLogger(log)}
	if cfg.RetrievalVersion != "" {
		retrOpts = append(retrOpts, retrieval.WithVersion(cfg.RetrievalVersion))
	}
	retrSvc, err := retrieval.NewService(endpointCfg(cfg.RetrievalEndpoint), retrOpts...)
	if err != nil {
		return nil, err
	}

	subOpts := []submission.Option{submission.WithTransport(tc), submission.WithLogger(log)}
	if cfg.SubmissionVersion != "" {
		subOpts = append(subOpts, submission.WithVersion(cfg.SubmissionVersion))
	}
	subSvc, err := submission.NewService(endpointCfg(cfg.SubmissionEndpoint), subOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		Echo:       echoSvc,
		Retrieval:  retrSvc,
		Submission: subSvc,
	}, nil
}
