// Package retrieval implements the EUDR retrieval service client for
// querying previously submitted Due Diligence Statements.
package retrieval

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/soap"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/transport"
)

// Namespace is the retrieval service schema namespace.
const Namespace = "http://ec.europa.eu/tracesnt/certificate/eudr/retrieval/v1"

// ErrNoIdentifiers is returned when a query is made without any DDS
// identifier.
var ErrNoIdentifiers = errors.New("at least one DDS identifier is required")

// ErrNotFound is returned when the service reports no statement for the
// given identifiers.
var ErrNotFound = errors.New("no statement found")

// DdsInfo describes the state of a submitted Due Diligence Statement.
// Reference and verification numbers are only assigned once the statement
// reaches the AVAILABLE status.
type DdsInfo struct {
	UUID                    string
	InternalReferenceNumber string
	ReferenceNumber         string
	VerificationNumber      string
	Status                  string
	Date                    string
	UpdatedBy               string
}

// Service is the retrieval service client.
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

// WithVersion selects the API version (default v1).
func WithVersion(version string) Option {
	return func(s *Service) { s.version = version }
}

// NewService resolves the retrieval endpoint from cfg and returns a
// client.
func NewService(cfg endpoint.Config, opts ...Option) (*Service, error) {
	s := &Service{version: endpoint.VersionV1}
	for _, opt := range opts {
		opt(s)
	}

	resolved, err := endpoint.ValidateAndGenerateEndpoint(cfg, endpoint.ServiceRetrieval, s.version)
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

// GetDdsInfo returns statement information for the given DDS UUIDs.
func (s *Service) GetDdsInfo(ctx context.Context, uuids ...string) ([]DdsInfo, error) {
	if len(uuids) == 0 {
		return nil, ErrNoIdentifiers
	}

	env := s.newRequest()
	req := env.Body().CreateElement("v1:GetStatementInfoRequest")
	for _, id := range uuids {
		req.CreateElement("v1:identifier").SetText(id)
	}

	return s.query(ctx, env)
}

// GetDdsInfoByInternalReferenceNumber returns statement information for
// every DDS submitted under the given internal reference number.
func (s *Service) GetDdsInfoByInternalReferenceNumber(ctx context.Context, ref string) ([]DdsInfo, error) {
	if ref == "" {
		return nil, ErrNoIdentifiers
	}

	env := s.newRequest()
	req := env.Body().CreateElement("v1:GetDdsInfoByInternalReferenceNumberRequest")
	req.CreateElement("v1:internalReferenceNumber").SetText(ref)

	return s.query(ctx, env)
}

// GetStatementByIdentifiers returns the statement matching a reference
// number and verification number pair, as printed on customs documents.
func (s *Service) GetStatementByIdentifiers(ctx context.Context, referenceNumber, verificationNumber string) (*DdsInfo, error) {
	if referenceNumber == "" || verificationNumber == "" {
		return nil, ErrNoIdentifiers
	}

	env := s.newRequest()
	req := env.Body().CreateElement("v1:GetStatementByIdentifiersRequest")
	req.CreateElement("v1:referenceNumber").SetText(referenceNumber)
	req.CreateElement("v1:verificationNumber").SetText(verificationNumber)

	infos, err := s.query(ctx, env)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, ErrNotFound
	}
	return &infos[0], nil
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

func (s *Service) query(ctx context.Context, env *soap.Envelope) ([]DdsInfo, error) {
	data, err := env.Bytes()
	if err != nil {
		return nil, err
	}

	action, _ := endpoint.SOAPAction(endpoint.ServiceRetrieval)
	s.log.Debug("retrieval request", "endpoint", s.endpoint)

	respBody, err := s.transport.Call(ctx, s.endpoint, action, data)
	if err != nil {
		return nil, fmt.Errorf("retrieval request failed: %w", err)
	}

	doc, err := soap.Parse(respBody)
	if err != nil {
		return nil, err
	}

	return parseStatementInfos(doc.Root()), nil
}

// parseStatementInfos maps statementInfo elements to DdsInfo records.
func parseStatementInfos(root *etree.Element) []DdsInfo {
	elements := soap.FindElements(root, "statementInfo")
	infos := make([]DdsInfo, 0, len(elements))
	for _, el := range elements {
		infos = append(infos, DdsInfo{
			UUID:                    soap.ElementText(el, "identifier"),
			InternalReferenceNumber: soap.ElementText(el, "internalReferenceNumber"),
			ReferenceNumber:         soap.ElementText(el, "referenceNumber"),
			VerificationNumber:      soap.ElementText(el, "verificationNumber"),
			Status:                  soap.ElementText(el, "status"),
			Date:                    soap.ElementText(el, "date"),
			UpdatedBy:               soap.ElementText(el, "updatedBy"),
		})
	}
	return infos
}
