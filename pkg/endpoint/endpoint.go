package endpoint

import (
	"fmt"
	"strings"
)

// Well-known client identifiers for the EUDR deployments.
const (
	// ClientProduction targets the production EUDR environment.
	ClientProduction = "eudr"
	// ClientAcceptance targets the acceptance (test) EUDR environment.
	ClientAcceptance = "eudr-test"
)

// Service names exposed by the EUDR system.
const (
	ServiceEcho       = "echo"
	ServiceRetrieval  = "retrieval"
	ServiceSubmission = "submission"
)

// Supported API versions.
const (
	VersionV1 = "v1"
	VersionV2 = "v2"
)

// WSPathPrefix is the fixed path segment between the base URL and the
// service path on every EUDR deployment.
const WSPathPrefix = "/tracesnt/ws"

// standardClientIDs preserves registration order for user-facing listings.
var standardClientIDs = []string{ClientProduction, ClientAcceptance}

var baseURLs = map[string]string{
	ClientProduction: "https://eudr.webcloud.ec.europa.eu",
	ClientAcceptance: "https://acceptance.eudr.webcloud.ec.europa.eu",
}

var serviceNames = []string{ServiceEcho, ServiceRetrieval, ServiceSubmission}

// servicePaths maps (service, version) to the path suffix of the service.
// The echo and retrieval paths are identical across v1 and v2; the version
// dimension exists for forward compatibility.
var servicePaths = map[string]map[string]string{
	ServiceEcho: {
		VersionV1: "/EudrEchoService",
		VersionV2: "/EudrEchoService",
	},
	ServiceRetrieval: {
		VersionV1: "/EUDRRetrievalServiceV1",
		VersionV2: "/EUDRRetrievalServiceV1",
	},
	ServiceSubmission: {
		VersionV1: "/EUDRSubmissionServiceV1",
		VersionV2: "/EUDRSubmissionServiceV2",
	},
}

var serviceVersions = map[string][]string{
	ServiceEcho:       {VersionV1, VersionV2},
	ServiceRetrieval:  {VersionV1, VersionV2},
	ServiceSubmission: {VersionV1, VersionV2},
}

// soapActions maps a service name to the SOAPAction header value sent by
// the transport layer.
var soapActions = map[string]string{
	ServiceEcho:       "http://ec.europa.eu/tracesnt/certificate/eudr/echo/testEcho",
	ServiceRetrieval:  "http://ec.europa.eu/tracesnt/certificate/eudr/retrieval/getDdsInfo",
	ServiceSubmission: "http://ec.europa.eu/tracesnt/certificate/eudr/submission/submitDds",
}

// Config carries the caller-supplied connection settings examined during
// endpoint resolution. Credentials are passed through untouched; they are
// consumed by the security layer, not by this package.
type Config struct {
	// Endpoint, when non-empty, is used verbatim and disables generation.
	Endpoint string
	// WebServiceClientID selects a well-known deployment when Endpoint
	// is not provided.
	WebServiceClientID string

	Username string
	Password string
}

// IsStandardClientID reports whether id is one of the well-known client
// identifiers. The empty string and unrecognized identifiers return false.
func IsStandardClientID(id string) bool {
	_, ok := baseURLs[id]
	return ok
}

// BaseURL returns the base URL (scheme and host) for a well-known client
// identifier.
func BaseURL(id string) (string, error) {
	url, ok := baseURLs[id]
	if !ok {
		return "", newConfigurationErrorf(
			"Automatic endpoint generation not supported for webServiceClientId: %s. Please provide endpoint manually.", id)
	}
	return url, nil
}

// ServicePath returns the URL path suffix for the given service and
// version. Service validity is checked before version validity.
func ServicePath(service, version string) (string, error) {
	versions, ok := servicePaths[service]
	if !ok {
		return "", newConfigurationErrorf(
			"Unknown service: %s. Supported services: %s", service, strings.Join(serviceNames, ", "))
	}
	path, ok := versions[version]
	if !ok {
		return "", newConfigurationErrorf(
			"Version %s not supported for service %s. Supported versions: %s",
			version, service, strings.Join(serviceVersions[service], ", "))
	}
	return path, nil
}

// SOAPAction returns the SOAPAction header value for a service. The second
// return value is false for unknown services.
func SOAPAction(service string) (string, bool) {
	action, ok := soapActions[service]
	return action, ok
}

// GenerateEndpoint composes the full endpoint URL for a service, version,
// and well-known client identifier.
func GenerateEndpoint(service, version, clientID string) (string, error) {
	base, err := BaseURL(clientID)
	if err != nil {
		return "", err
	}
	path, err := ServicePath(service, version)
	if err != nil {
		return "", err
	}
	return base + WSPathPrefix + path, nil
}

// ValidateAndGenerateEndpoint resolves the endpoint for cfg. An explicit
// endpoint always wins and is returned unchanged without service or
// version validation. Otherwise the endpoint is generated from the
// well-known client identifier; a missing or non-standard identifier is a
// configuration error. The returned Config is a copy of cfg with the
// Endpoint field populated.
func ValidateAndGenerateEndpoint(cfg Config, service, version string) (Config, error) {
	if cfg.Endpoint != "" {
		return cfg, nil
	}
	if cfg.WebServiceClientID == "" {
		return Config{}, newConfigurationErrorf("webServiceClientId is required when endpoint is not provided")
	}
	if !IsStandardClientID(cfg.WebServiceClientID) {
		return Config{}, newConfigurationErrorf(
			"webServiceClientId %q does not support automatic endpoint generation. Please provide endpoint manually or use one of: %s",
			cfg.WebServiceClientID, strings.Join(standardClientIDs, ", "))
	}
	url, err := GenerateEndpoint(service, version, cfg.WebServiceClientID)
	if err != nil {
		return Config{}, err
	}
	resolved := cfg
	resolved.Endpoint = url
	return resolved, nil
}

// SupportedClientIDs returns the well-known client identifiers in
// registration order.
func SupportedClientIDs() []string {
	ids := make([]string, len(standardClientIDs))
	copy(ids, standardClientIDs)
	return ids
}

// SupportedServices returns the service names in a stable order.
func SupportedServices() []string {
	names := make([]string, len(serviceNames))
	copy(names, serviceNames)
	return names
}

// SupportedVersions returns the versions supported by a service, or an
// empty slice for an unknown service.
func SupportedVersions(service string) []string {
	versions, ok := serviceVersions[service]
	if !ok {
		return nil
	}
	out := make([]string, len(versions))
	copy(out, versions)
	return out
}

// ConfigurationError signals a caller configuration mistake. It is never
// transient: the caller must correct the input and retry.
type ConfigurationError struct {
	msg string
}

func newConfigurationErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.msg
}
