/*
Package eudrapiclient implements a Go client for the European
Commission's EUDR (EU Deforestation Regulation) web services hosted on
TRACES NT.

# Overview

The EUDR system exposes three SOAP services: an echo service for
connectivity testing, a retrieval service for querying Due Diligence
Statements (DDS), and a submission service for submitting, amending, and
retracting statements. This module covers all three, including endpoint
resolution for the production and acceptance environments, WS-Security
UsernameToken authentication, and an HTTPS transport with retry.

# Package Structure

	github.com/mfrntic/eudr-api-client-sub001/pkg/eudr       - Combined client for all services
	github.com/mfrntic/eudr-api-client-sub001/pkg/echo       - Echo (connectivity test) service
	github.com/mfrntic/eudr-api-client-sub001/pkg/retrieval  - DDS retrieval service
	github.com/mfrntic/eudr-api-client-sub001/pkg/submission - DDS submission service
	github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint   - Endpoint resolution
	github.com/mfrntic/eudr-api-client-sub001/pkg/soap       - SOAP envelopes and WS-Security
	github.com/mfrntic/eudr-api-client-sub001/pkg/transport  - HTTPS transport with retry
	github.com/mfrntic/eudr-api-client-sub001/pkg/logging    - Leveled logging facade

# Quick Start

	client, err := eudr.New(eudr.Config{
	    Username:           os.Getenv("EUDR_USERNAME"),
	    Password:           os.Getenv("EUDR_PASSWORD"),
	    WebServiceClientID: "eudr-test",
	})
	if err != nil {
	    log.Fatal(err)
	}

	status, err := client.Echo.Test(ctx, "ping")

Endpoints are generated from the web service client id ("eudr" for
production, "eudr-test" for acceptance); custom deployments provide
explicit endpoint URLs instead.

# References

  - EUDR: https://environment.ec.europa.eu/topics/forests/deforestation/regulation-deforestation-free-products_en
  - TRACES NT: https://webgate.ec.europa.eu/tracesnt/
  - WS-Security UsernameToken Profile 1.0: https://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0.pdf
*/
package eudrapiclient
