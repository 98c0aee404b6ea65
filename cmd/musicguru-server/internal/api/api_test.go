package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/skycoin/skycoin/src/util/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycoin/musicguru"
	"github.com/skycoin/musicguru/httputil"
	"github.com/skycoin/musicguru/models"
	"github.com/skycoin/musicguru/songdb"
)

func TestMain(m *testing.M) {
	logging.Disable()
	os.Exit(m.Run())
}

func newTestAPI(t *testing.T, lines []string) *httptest.Server {
	db := songdb.New(songdb.NewMemorySource(lines), nil)
	srv := musicguru.NewServer(db, nil, nil)
	a := New(logging.MustGetLogger("api_test"), srv, "memory", true)

	ts := httptest.NewServer(a)
	t.Cleanup(ts.Close)
	return ts
}

func TestAPI_Health(t *testing.T) {
	ts := newTestAPI(t, []string{"1990", "1. A", "1999", "1. B"})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { assert.NoError(t, resp.Body.Close()) }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.HealthcheckResponse
	require.NoError(t, httputil.ReadJSON(resp, &body))
	require.NotNil(t, body.DateRange)
	assert.Equal(t, songdb.DateRange{Start: 1990, End: 1999}, *body.DateRange)
	assert.Equal(t, "memory", body.Database)
	assert.Empty(t, body.Error)
	assert.NotNil(t, body.BuildInfo)
}

func TestAPI_HealthWithoutRange(t *testing.T) {
	ts := newTestAPI(t, []string{"1990", "1. A"})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { assert.NoError(t, resp.Body.Close()) }()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body models.HealthcheckResponse
	require.NoError(t, httputil.ReadJSON(resp, &body))
	assert.Nil(t, body.DateRange)
	assert.Equal(t, songdb.ErrNoDateRange.Error(), body.Error)
}

func TestAPI_Components(t *testing.T) {
	ts := newTestAPI(t, []string{"1990", "1. A", "1999", "1. B"})

	buf := new(bytes.Buffer)
	require.NoError(t, httputil.CheckHealth(ts.URL+"/health/components", buf))
	assert.Contains(t, buf.String(), "[database] 200 OK: 1990-1999")
	assert.Contains(t, buf.String(), "[sessions] 200 OK: active=0 served=0 failed=0")
}

func TestAPI_Metrics(t *testing.T) {
	ts := newTestAPI(t, []string{"1990", "1999"})

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	assert.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
