package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a response body is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON body")

type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

// FromHTTP reads and closes the body of res and returns it as a Response.
func FromHTTP(res *http.Response) (*Response, error) {
	if res == nil {
		return nil, errors.New("response is nil")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	headers := make(map[string]string, len(res.Header))
	for k := range res.Header {
		headers[k] = res.Header.Get(k)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Headers:    headers,
		Body:       body,
	}, nil
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// JSON decodes the body into plain maps, slices and scalars. An empty
// body decodes to nil.
func (r *Response) JSON() (any, error) {
	if len(strings.TrimSpace(string(r.Body))) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(r.Body) {
		return nil, ErrInvalidJSON
	}
	return gjson.ParseBytes(r.Body).Value(), nil
}

// Get returns the value at a gjson path of the body.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// HasHeader reports whether the header is present, even with an empty value.
func (r *Response) HasHeader(key string) bool {
	for k := range r.Headers {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
