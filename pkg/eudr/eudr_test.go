package eudr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
)

func TestNew_GeneratesAllEndpoints(t *testing.T) {
	client, err := New(Config{
		Username:           "u",
		Password:           "p",
		WebServiceClientID: endpoint.ClientAcceptance,
		Logger:             logging.Nop(),
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://acceptance.eudr.webcloud.ec.europa.eu/tracesnt/ws/EudrEchoService",
		client.Echo.Endpoint())
	assert.Equal(t,
		"https://acceptance.eudr.webcloud.ec.europa.eu/tracesnt/ws/EUDRRetrievalServiceV1",
		client.Retrieval.Endpoint())
	assert.Equal(t,
		"https://acceptance.eudr.webcloud.ec.europa.eu/tracesnt/ws/EUDRSubmissionServiceV2",
		client.Submission.Endpoint())
}

func TestNew_SubmissionVersionOverride(t *testing.T) {
	client, err := New(Config{
		WebServiceClientID: endpoint.ClientProduction,
		SubmissionVersion:  endpoint.VersionV1,
		Logger:             logging.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t,
		"https://eudr.webcloud.ec.europa.eu/tracesnt/ws/EUDRSubmissionServiceV1",
		client.Submission.Endpoint())
}

func TestNew_EndpointOverrides(t *testing.T) {
	client, err := New(Config{
		WebServiceClientID: endpoint.ClientProduction,
		EchoEndpoint:       "https://custom.example.com/echo",
		Logger:             logging.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://custom.example.com/echo", client.Echo.Endpoint())
	assert.Equal(t,
		"https://eudr.webcloud.ec.europa.eu/tracesnt/ws/EUDRRetrievalServiceV1",
		client.Retrieval.Endpoint())
}

func TestNew_CustomClientIDNeedsEndpoints(t *testing.T) {
	_, err := New(Config{
		WebServiceClientID: "my-company",
		Logger:             logging.Nop(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support automatic endpoint generation")

	client, err := New(Config{
		WebServiceClientID: "my-company",
		EchoEndpoint:       "https://c/echo",
		RetrievalEndpoint:  "https://c/retrieval",
		SubmissionEndpoint: "https://c/submission",
		Logger:             logging.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://c/echo", client.Echo.Endpoint())
}

func TestNew_MissingClientID(t *testing.T) {
	_, err := New(Config{Username: "u", Logger: logging.Nop()})
	require.Error(t, err)
	assert.Equal(t, "webServiceClientId is required when endpoint is not provided", err.Error())
}
