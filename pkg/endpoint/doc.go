// Package endpoint resolves EUDR web service endpoints from a client
// identifier and a (service, version) pair.
//
// The EUDR system is deployed at two well-known locations: the production
// environment and the acceptance environment used for conformance testing.
// Each deployment exposes the same three SOAP services (echo, retrieval,
// submission) under the common /tracesnt/ws path prefix. This package maps
// the symbolic identifiers used in client configuration to concrete URLs,
// so callers only need to know which environment they target.
//
// Custom deployments are supported by providing an explicit endpoint in
// the configuration, which bypasses generation entirely.
//
// All lookups operate on immutable package-level tables and are safe for
// concurrent use.
package endpoint
