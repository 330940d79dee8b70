package extractors

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

const samplePage = `[
	{"page":1,"pages":1,"per_page":3,"total":3,"sourceid":"2","lastupdated":"2024-06-28"},
	[
		{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},"country":{"id":"BR","value":"Brazil"},"countryiso3code":"BRA","date":"2021","value":300,"unit":"","obs_status":"","decimal":0},
		{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},"country":{"id":"BR","value":"Brazil"},"countryiso3code":"BRA","date":"2020","value":null,"unit":"","obs_status":"","decimal":0},
		{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},"country":{"id":"BR","value":"Brazil"},"countryiso3code":"BRA","date":"2019","value":100,"unit":"","obs_status":"","decimal":0}
	]
]`

func newTestLogger() *utils.ETLLogger {
	return utils.NewETLLoggerWithWriter("error", io.Discard)
}

func newTestServer(t *testing.T, status int, body string, requests *int32) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt32(requests, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIndicatorExtractor_BuildURL(t *testing.T) {
	e := NewIndicatorExtractor(http.DefaultClient, "", models.GDPIndicator, newTestLogger())

	got := e.BuildURL("BR", 1960, 2021)
	assert.Equal(t,
		"https://api.worldbank.org/v2/country/BR/indicator/NY.GDP.MKTP.CD?date=1960%3A2021&format=json&per_page=62",
		got)
}

func TestExtractor_Extract_SortsByValue(t *testing.T) {
	var requests int32
	server := newTestServer(t, http.StatusOK, samplePage, &requests)
	extractor := NewExtractor(server.URL, time.Second, models.GDPIndicator, newTestLogger())

	observations, err := extractor.Extract(context.Background(), "BR", 2019, 2021)
	require.NoError(t, err)
	require.Len(t, observations, 3)

	assert.Equal(t, 2019, observations[0].Year)
	assert.Equal(t, 2021, observations[1].Year)
	assert.Equal(t, 2020, observations[2].Year)
	assert.True(t, observations[2].Value.IsNull())
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestExtractor_Extract_RequestPath(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `[{"page":1},[]]`)
	}))
	defer server.Close()

	extractor := NewExtractor(server.URL, time.Second, models.GDPIndicator, newTestLogger())
	observations, err := extractor.Extract(context.Background(), "USA", 1960, 2021)
	require.NoError(t, err)

	assert.Empty(t, observations)
	assert.Equal(t, "/v2/country/USA/indicator/NY.GDP.MKTP.CD", gotPath)
	assert.Equal(t, "date=1960%3A2021&format=json&per_page=62", gotQuery)
}

func TestExtractor_Extract_NullPageIsEmpty(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `[{"page":0,"pages":0,"total":0},null]`, nil)
	extractor := NewExtractor(server.URL, time.Second, models.GDPIndicator, newTestLogger())

	observations, err := extractor.Extract(context.Background(), "BR", 2030, 2031)
	require.NoError(t, err)
	assert.Empty(t, observations)
}

func TestExtractor_Extract_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `oops`, ErrUnexpectedStatus},
		{"not json", http.StatusOK, `<html></html>`, ErrUnexpectedResponse},
		{"api error envelope", http.StatusOK,
			`[{"message":[{"id":"120","key":"Invalid value","value":"The provided parameter value is not valid"}]}]`,
			ErrUnexpectedResponse},
		{"single element", http.StatusOK, `[{"page":1}]`, ErrUnexpectedResponse},
		{"records not a list", http.StatusOK, `[{"page":1},{"date":"2020"}]`, ErrUnexpectedResponse},
		{"bad year", http.StatusOK, `[{"page":1},[{"date":"MRV","value":1}]]`, ErrMalformedRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body, nil)
			extractor := NewExtractor(server.URL, time.Second, models.GDPIndicator, newTestLogger())

			_, err := extractor.Extract(context.Background(), "BR", 2019, 2021)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, "BR", fetchErr.Country)
		})
	}
}

func TestExtractor_Extract_InvalidRange(t *testing.T) {
	var requests int32
	server := newTestServer(t, http.StatusOK, samplePage, &requests)
	extractor := NewExtractor(server.URL, time.Second, models.GDPIndicator, newTestLogger())

	_, err := extractor.Extract(context.Background(), "BR", 2021, 2019)
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests))
}

func TestExtractor_Extract_ContextCanceled(t *testing.T) {
	server := newTestServer(t, http.StatusOK, samplePage, nil)
	extractor := NewExtractor(server.URL, time.Second, models.GDPIndicator, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, "BR", 2019, 2021)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSortByValue(t *testing.T) {
	observations := []models.RawObservation{
		{Year: 2000, Value: models.StringValue("abc")},
		{Year: 2001, Value: models.NumberValue(300)},
		{Year: 2002, Value: models.NullValue()},
		{Year: 2003, Value: models.StringValue("100")},
		{Year: 2004, Value: models.NumberValue(200)},
	}

	SortByValue(observations)

	var years []int
	for _, o := range observations {
		years = append(years, o.Year)
	}
	assert.Equal(t, []int{2003, 2004, 2001, 2000, 2002}, years)
}
