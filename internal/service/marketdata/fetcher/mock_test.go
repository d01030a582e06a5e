package fetcher

import (
	"io"
	"net/http"
	"strings"

	"github.com/stretchr/testify/mock"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if fn, ok := args.Get(0).(func(*http.Request) *http.Response); ok {
		return fn(req), args.Error(1)
	}
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func newResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
