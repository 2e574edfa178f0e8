package assumptions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"retirement-engine/internal/finance"
)

func TestAssetReturnsFallsBackUnconfigured(t *testing.T) {
	Configure("")
	assert.Equal(t, finance.HistoricalReturns, AssetReturns())
}

func TestConfiguredRegistryOverridesHistoricalReturns(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/returns", r.URL.Path)
		w.Write([]byte(`{"us_stocks":0.11,"international_stocks":0.09,"bonds":0.05,"cash":0.03}`))
	}))
	defer srv.Close()
	t.Cleanup(func() { Configure("") })

	Configure(srv.URL)

	want := finance.AssetReturns{USStocks: 0.11, InternationalStocks: 0.09, Bonds: 0.05, Cash: 0.03}
	assert.Equal(t, want, AssetReturns())
	assert.Equal(t, want, AssetReturns())
	assert.Equal(t, 1, hits, "the first fetch is cached for the process lifetime")
}

func TestAssetReturnsFallsBackOnRegistryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Cleanup(func() { Configure("") })

	Configure(srv.URL)
	assert.Equal(t, finance.HistoricalReturns, AssetReturns())
}
