// Package submission implements the EUDR submission service client:
// submitting, amending, and retracting Due Diligence Statements.
package submission

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/soap"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/transport"
)

// Namespace is the submission service schema namespace.
const Namespace = "http://ec.europa.eu/tracesnt/certificate/eudr/submission/v1"

// Service is the submission service client.
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

// WithTransport sets the transport client.
func WithTransport(tc *transport.Client) Option {
	return func(s *Service) { s.transport = tc }
}

// WithLogger sets the service logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithVersion selects the API version. Defaults to v2, the current
// submission schema; v1 remains available for deployments that have not
// migrated.
func WithVersion(version string) Option {
	return func(s *Service) { s.version = version }
}

// NewService resolves the submission endpoint from cfg and returns a
// client.
func NewService(cfg endpoint.Config, opts ...Option) (*Service, error) {
	s := &Service{version: endpoint.VersionV2}
	for _, opt := range opts {
		opt(s)
	}

	resolved, err := endpoint.ValidateAndGenerateEndpoint(cfg, endpoint.ServiceSubmission, s.version)
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

// SubmitDds submits a statement and returns the DDS identifier assigned
// by the service.
func (s *Service) SubmitDds(ctx context.Context, stmt *Statement) (string, error) {
	if err := stmt.Validate(); err != nil {
		return "", err
	}

	env := s.newRequest()
	req := env.Body().CreateElement("v1:SubmitStatementRequest")
	writeStatement(req, stmt)

	root, err := s.call(ctx, env)
	if err != nil {
		return "", fmt.Errorf("submit failed: %w", err)
	}

	id := soap.ElementText(root, "ddsIdentifier")
	if id == "" {
		return "", fmt.Errorf("submit response contains no ddsIdentifier")
	}
	s.log.Info("statement submitted", "ddsIdentifier", id, "internalReferenceNumber", stmt.InternalReferenceNumber)
	return id, nil
}

// AmendDds replaces the content of a previously submitted statement.
func (s *Service) AmendDds(ctx context.Context, ddsID string, stmt *Statement) error {
	if ddsID == "" {
		return ErrMissingIdentifier
	}
	if err := stmt.Validate(); err != nil {
		return err
	}

	env := s.newRequest()
	req := env.Body().CreateElement("v1:AmendStatementRequest")
	req.CreateElement("v1:ddsIdentifier").SetText(ddsID)
	writeStatement(req, stmt)

	if _, err := s.call(ctx, env); err != nil {
		return fmt.Errorf("amend failed: %w", err)
	}
	s.log.Info("statement amended", "ddsIdentifier", ddsID)
	return nil
}

// RetractDds withdraws a previously submitted statement.
func (s *Service) RetractDds(ctx context.Context, ddsID string) error {
	if ddsID == "" {
		return ErrMissingIdentifier
	}

	env := s.newRequest()
	req := env.Body().CreateElement("v1:RetractStatementRequest")
	req.CreateElement("v1:ddsIdentifier").SetText(ddsID)

	if _, err := s.call(ctx, env); err != nil {
		return fmt.Errorf("retract failed: %w", err)
	}
	s.log.Info("statement retracted", "ddsIdentifier", ddsID)
	return nil
}

func (s *Service) newRequest() *soap.Envelope {
	env := soap.NewEnvelope()
	env.DeclareNamespace("v1", Namespace)
	env.AddSecurity(soap.SecurityOptions{Credentials: s.creds})
	if s.clientID != "" {
		env.AddClientID(s.clientID)
	}
	return env
}

func (s *Service) call(ctx context.Context, env *soap.Envelope) (*etree.Element, error) {
	data, err := env.Bytes()
	if err != nil {
		return nil, err
	}

	action, _ := endpoint.SOAPAction(endpoint.ServiceSubmission)
	s.log.Debug("submission request", "endpoint", s.endpoint)

	respBody, err := s.transport.Call(ctx, s.endpoint, action, data)
	if err != nil {
		return nil, err
	}

	doc, err := soap.Parse(respBody)
	if err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

// writeStatement serializes a Statement under parent.
func writeStatement(parent *etree.Element, stmt *Statement) {
	el := parent.CreateElement("v1:statement")
	el.CreateElement("v1:internalReferenceNumber").SetText(stmt.InternalReferenceNumber)
	el.CreateElement("v1:activityType").SetText(stmt.ActivityType)

	op := el.CreateElement("v1:operator")
	ref := op.CreateElement("v1:referenceNumber")
	ref.CreateElement("v1:identifierType").SetText(stmt.Operator.IdentifierType)
	ref.CreateElement("v1:identifierValue").SetText(stmt.Operator.IdentifierValue)
	op.CreateElement("v1:name").SetText(stmt.Operator.Name)
	op.CreateElement("v1:country").SetText(stmt.Operator.Country)
	if stmt.Operator.Address != "" {
		op.CreateElement("v1:address").SetText(stmt.Operator.Address)
	}

	if stmt.CountryOfActivity != "" {
		el.CreateElement("v1:countryOfActivity").SetText(stmt.CountryOfActivity)
	}
	if stmt.BorderCrossCountry != "" {
		el.CreateElement("v1:borderCrossCountry").SetText(stmt.BorderCrossCountry)
	}

	for _, c := range stmt.Commodities {
		cEl := el.CreateElement("v1:commodities")
		desc := cEl.CreateElement("v1:descriptors")
		desc.CreateElement("v1:descriptionOfGoods").SetText(c.DescriptionOfGoods)
		desc.CreateElement("v1:goodsMeasure").
			CreateElement("v1:netWeight").
			SetText(strconv.FormatFloat(c.NetWeight, 'f', -1, 64))
		cEl.CreateElement("v1:hsHeading").SetText(c.HSHeading)
		for _, sp := range c.Species {
			spEl := cEl.CreateElement("v1:speciesInfo")
			spEl.CreateElement("v1:scientificName").SetText(sp.ScientificName)
			spEl.CreateElement("v1:commonName").SetText(sp.CommonName)
		}
		if c.Geometry != "" {
			cEl.CreateElement("v1:producers").
				CreateElement("v1:geometryGeojson").
				SetText(c.Geometry)
		}
	}

	el.CreateElement("v1:geoLocationConfidential").SetText(strconv.FormatBool(stmt.GeoLocationConfidential))
}
