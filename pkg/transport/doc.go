// Package transport sends SOAP requests to the EUDR services over HTTPS
// with TLS 1.2/1.3.
//
// Transient failures (network errors, HTTP 429 and gateway-class 5xx
// responses) are retried with exponential backoff and jitter. SOAP faults
// are terminal: EUDR reports them with HTTP 500, so the response body is
// inspected before the status code is classified. Responses compressed
// with gzip are decoded transparently.
//
// An optional Prometheus collector records request counts, durations, and
// retries.
package transport
