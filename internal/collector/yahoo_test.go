package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartJSON(timestamps []int64, closes []string) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	cl := ""
	for i, c := range closes {
		if i > 0 {
			cl += ","
		}
		cl += c
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`, ts, cl)
}

func newTestFetcher(handler http.HandlerFunc) (*YahooFetcher, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &YahooFetcher{Client: srv.Client(), BaseURL: srv.URL}, srv
}

func TestYahooFetchDailyCloses(t *testing.T) {
	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	jan11 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	jan12 := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	var gotPath, gotQuery string
	f, srv := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, chartJSON(
			[]int64{jan12.Unix(), jan10.Unix(), jan11.Unix()},
			[]string{"2550.5", "2500", "2520"},
		))
	})
	defer srv.Close()

	quotes, err := f.FetchDailyCloses(context.Background(), "7203.T", jan10, jan12)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/7203.T", gotPath)
	assert.Contains(t, gotQuery, "interval=1d")
	assert.Contains(t, gotQuery, fmt.Sprintf("period1=%d", jan10.Unix()))
	// period2 is exclusive and must cover the whole end day.
	assert.Contains(t, gotQuery, fmt.Sprintf("period2=%d", jan12.AddDate(0, 0, 1).Unix()))

	require.Len(t, quotes, 3)
	// Returned in chronological order regardless of response order.
	assert.Equal(t, jan10, quotes[0].Date)
	assert.Equal(t, jan11, quotes[1].Date)
	assert.Equal(t, jan12, quotes[2].Date)
	assert.True(t, quotes[0].Close.Equal(decimal.NewFromInt(2500)))
	assert.True(t, quotes[2].Close.Equal(decimal.RequireFromString("2550.5")))
	assert.Equal(t, "7203.T", quotes[0].Symbol)
}

func TestYahooFetchSkipsNullBars(t *testing.T) {
	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	jan11 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	jan12 := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	f, srv := newTestFetcher(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, chartJSON(
			[]int64{jan10.Unix(), jan11.Unix(), jan12.Unix()},
			[]string{"2500", "null", "2550"},
		))
	})
	defer srv.Close()

	quotes, err := f.FetchDailyCloses(context.Background(), "7203.T", jan10, jan12)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, jan10, quotes[0].Date)
	assert.Equal(t, jan12, quotes[1].Date)
}

func TestYahooFetchNoData(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty result",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
			},
		},
		{
			name: "all closes null",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, chartJSON([]int64{1704844800}, []string{"null"}))
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, srv := newTestFetcher(tt.handler)
			defer srv.Close()

			_, err := f.FetchDailyCloses(context.Background(),
				"NOPE", time.Now().AddDate(0, 0, -5), time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoData), "want ErrNoData, got %v", err)
		})
	}
}

func TestYahooFetchAPIError(t *testing.T) {
	f, srv := newTestFetcher(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})
	defer srv.Close()

	_, err := f.FetchDailyCloses(context.Background(),
		"BAD", time.Now().AddDate(0, 0, -5), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}
