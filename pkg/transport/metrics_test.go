package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
)

func TestMetrics_RecordsOutcomes(t *testing.T) {
	var fail bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(faultXML))
			return
		}
		w.Write([]byte(responseXML))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry(reg)
	client := NewClient(testConfig(),
		WithHTTPClient(srv.Client()),
		WithLogger(logging.Nop()),
		WithMetrics(m))

	_, err := client.Call(context.Background(), srv.URL, "urn:echo", []byte("<env/>"))
	require.NoError(t, err)

	fail = true
	_, err = client.Call(context.Background(), srv.URL, "urn:echo", []byte("<env/>"))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("urn:echo", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("urn:echo", "fault")))
}

func TestMetrics_RecordsRetries(t *testing.T) {
	var served int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		if served == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(responseXML))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry(reg)
	client := NewClient(testConfig(),
		WithHTTPClient(srv.Client()),
		WithLogger(logging.Nop()),
		WithMetrics(m))

	_, err := client.Call(context.Background(), srv.URL, "urn:echo", []byte("<env/>"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.retriesTotal.WithLabelValues("urn:echo")))
}
