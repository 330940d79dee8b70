package extractors

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatus   = errors.New("unexpected HTTP status")
	ErrUnexpectedResponse = errors.New("unexpected response body")
	ErrMalformedRecord    = errors.New("malformed observation record")
	ErrInvalidRange       = errors.New("invalid year range")
)

// FetchError описывает ошибку запроса к источнику данных
type FetchError struct {
	Country string
	URL     string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Country, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
