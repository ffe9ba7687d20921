// Package soap builds and parses the SOAP 1.1 envelopes exchanged with
// the EUDR web services.
//
// Requests carry a WS-Security header with a Timestamp and a
// UsernameToken using digest authentication per the WSS UsernameToken
// Profile 1.0: the password never travels in clear, only
// Base64(SHA-1(nonce || created || password)).
//
// Responses are plain SOAP bodies or SOAP Faults; ParseFault extracts the
// latter into an error value.
package soap
