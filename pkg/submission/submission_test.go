package submission

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/transport"
)

const submitResponse = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"
    xmlns:v1="http://ec.europa.eu/tracesnt/certificate/eudr/submission/v1">
  <soapenv:Body>
    <v1:SubmitStatementResponse>
      <v1:ddsIdentifier>9d2f1c7e-5a34-4d2a-9f6c-1a2b3c4d5e6f</v1:ddsIdentifier>
    </v1:SubmitStatementResponse>
  </soapenv:Body>
</soapenv:Envelope>`

const emptyResponse = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body><AmendStatementResponse/></soapenv:Body>
</soapenv:Envelope>`

func validStatement() *Statement {
	return &Statement{
		InternalReferenceNumber: "PO-2025-001",
		ActivityType:            ActivityImport,
		Operator: Operator{
			IdentifierType:  "eori",
			IdentifierValue: "NL123456789",
			Name:            "Sample Importer BV",
			Country:         "NL",
		},
		CountryOfActivity:  "NL",
		BorderCrossCountry: "NL",
		Commodities: []Commodity{{
			HSHeading:          "4407",
			DescriptionOfGoods: "Sawn oak",
			NetWeight:          1250.5,
			Species:            []SpeciesInfo{{ScientificName: "Quercus robur", CommonName: "Oak"}},
			Geometry:           base64.StdEncoding.EncodeToString([]byte(`{"type":"FeatureCollection"}`)),
		}},
	}
}

func newTestService(t *testing.T, srv *httptest.Server) *Service {
	t.Helper()
	svc, err := NewService(endpoint.Config{
		Endpoint:           srv.URL,
		WebServiceClientID: endpoint.ClientAcceptance,
		Username:           "u",
		Password:           "p",
	},
		WithTransport(transport.NewClient(nil, transport.WithHTTPClient(srv.Client()), transport.WithLogger(logging.Nop()))),
		WithLogger(logging.Nop()))
	require.NoError(t, err)
	return svc
}

func TestNewService_DefaultsToV2(t *testing.T) {
	svc, err := NewService(endpoint.Config{WebServiceClientID: endpoint.ClientAcceptance})
	require.NoError(t, err)
	assert.Equal(t,
		"https://acceptance.eudr.webcloud.ec.europa.eu/tracesnt/ws/EUDRSubmissionServiceV2",
		svc.Endpoint())
}

func TestNewService_V1(t *testing.T) {
	svc, err := NewService(endpoint.Config{WebServiceClientID: endpoint.ClientProduction},
		WithVersion(endpoint.VersionV1))
	require.NoError(t, err)
	assert.Equal(t,
		"https://eudr.webcloud.ec.europa.eu/tracesnt/ws/EUDRSubmissionServiceV1",
		svc.Endpoint())
}

func TestSubmitDds(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Write([]byte(submitResponse))
	}))
	defer srv.Close()

	svc := newTestService(t, srv)
	id, err := svc.SubmitDds(context.Background(), validStatement())
	require.NoError(t, err)
	assert.Equal(t, "9d2f1c7e-5a34-4d2a-9f6c-1a2b3c4d5e6f", id)

	sent := string(captured)
	assert.Contains(t, sent, "<v1:internalReferenceNumber>PO-2025-001</v1:internalReferenceNumber>")
	assert.Contains(t, sent, "<v1:activityType>IMPORT</v1:activityType>")
	assert.Contains(t, sent, "<v1:hsHeading>4407</v1:hsHeading>")
	assert.Contains(t, sent, "<v1:netWeight>1250.5</v1:netWeight>")
	assert.Contains(t, sent, "<v1:scientificName>Quercus robur</v1:scientificName>")
	assert.Contains(t, sent, "<v1:geoLocationConfidential>false</v1:geoLocationConfidential>")
	assert.Contains(t, sent, "<wsse:Username>u</wsse:Username>")
}

func TestSubmitDds_Validation(t *testing.T) {
	svc, err := NewService(endpoint.Config{WebServiceClientID: endpoint.ClientAcceptance})
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*Statement)
		wantErr error
	}{
		{"missing internal reference", func(s *Statement) { s.InternalReferenceNumber = "" }, ErrMissingInternalReference},
		{"missing activity type", func(s *Statement) { s.ActivityType = "" }, ErrMissingActivityType},
		{"no commodities", func(s *Statement) { s.Commodities = nil }, ErrNoCommodities},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := validStatement()
			tt.mutate(stmt)
			_, err := svc.SubmitDds(context.Background(), stmt)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitDds_MissingIdentifierInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(emptyResponse))
	}))
	defer srv.Close()

	svc := newTestService(t, srv)
	_, err := svc.SubmitDds(context.Background(), validStatement())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ddsIdentifier")
}

func TestAmendDds(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Write([]byte(emptyResponse))
	}))
	defer srv.Close()

	svc := newTestService(t, srv)
	err := svc.AmendDds(context.Background(), "dds-123", validStatement())
	require.NoError(t, err)
	assert.Contains(t, string(captured), "<v1:ddsIdentifier>dds-123</v1:ddsIdentifier>")

	err = svc.AmendDds(context.Background(), "", validStatement())
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestRetractDds(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Write([]byte(emptyResponse))
	}))
	defer srv.Close()

	svc := newTestService(t, srv)
	err := svc.RetractDds(context.Background(), "dds-123")
	require.NoError(t, err)
	assert.Contains(t, string(captured), "<v1:RetractStatementRequest>")
	assert.Contains(t, string(captured), "<v1:ddsIdentifier>dds-123</v1:ddsIdentifier>")

	err = svc.RetractDds(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestStatementValidate(t *testing.T) {
	assert.NoError(t, validStatement().Validate())
}
