// Package assumptions resolves per-asset-class expected returns, either
// from an optional external registry or from the fixed historical set.
package assumptions

import (
	"io"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"retirement-engine/internal/finance"
)

var (
	mu          sync.Mutex
	registryURL string
	client      *http.Client
	cached      *finance.AssetReturns
)

// Configure points the package at an external assumptions registry. An
// empty URL disables fetching. Any previously cached result is dropped,
// so reconfiguring takes effect on the next lookup.
func Configure(url string) {
	mu.Lock()
	defer mu.Unlock()

	registryURL = url
	cached = nil

	if url == "" {
		client = nil
		return
	}
	client = &http.Client{
		Timeout: 2 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// AssetReturns fetches per-asset-class expected nominal returns from the
// configured assumptions registry. Fetched once and cached for the
// process lifetime. Falls back to the fixed historical returns when no
// registry is configured or the fetch fails.
func AssetReturns() finance.AssetReturns {
	mu.Lock()
	defer mu.Unlock()

	if registryURL == "" {
		return finance.HistoricalReturns
	}

	if cached != nil {
		return *cached
	}

	returns := fetchReturns()
	cached = &returns
	return returns
}

func fetchReturns() finance.AssetReturns {
	resp, err := client.Get(registryURL + "/returns")
	if err != nil {
		return finance.HistoricalReturns
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return finance.HistoricalReturns
	}

	var returns finance.AssetReturns
	if err := json.NewDecoder(resp.Body).Decode(&returns); err != nil {
		return finance.HistoricalReturns
	}
	return returns
}
