package http

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
)

var jsonContentType = regexp.MustCompile(`application/json`)

// Verifier checks responses against the JSON response contract.
type Verifier struct {
	matcher *matcher.Matcher
}

// NewVerifier creates a Verifier comparing bodies with m.
func NewVerifier(m *matcher.Matcher) *Verifier {
	if m == nil {
		m = matcher.Default()
	}
	return &Verifier{matcher: m}
}

// AssertResponse checks res with the default matcher.
func AssertResponse(res *Response, expectedStatus int, expectedBody any) error {
	return NewVerifier(nil).AssertResponse(res, expectedStatus, expectedBody)
}

// AssertResponse checks that res has the expected status and shape. A 204
// response must have no content type and an empty body. Any other response
// must be JSON and its decoded body must match expectedBody. A zero
// StatusCode in res skips the status check.
func (v *Verifier) AssertResponse(res *Response, expectedStatus int, expectedBody any) error {
	if res == nil {
		return fmt.Errorf("response is nil")
	}

	if res.StatusCode != 0 && res.StatusCode != expectedStatus {
		return &matcher.AssertionError{
			Message:  fmt.Sprintf("expected status %d to equal %d", res.StatusCode, expectedStatus),
			Path:     "status",
			Actual:   res.StatusCode,
			Expected: expectedStatus,
		}
	}

	if expectedStatus == http.StatusNoContent {
		if res.HasHeader("Content-Type") {
			return &matcher.AssertionError{
				Message: fmt.Sprintf("expected content-type %q to be absent", res.ContentType()),
				Path:    "headers.content-type",
				Actual:  res.ContentType(),
			}
		}
		if !isEmptyBody(res.Body) {
			return &matcher.AssertionError{
				Message: fmt.Sprintf("expected body %q to be empty", res.BodyString()),
				Path:    "body",
				Actual:  res.BodyString(),
			}
		}
		return nil
	}

	if !jsonContentType.MatchString(res.ContentType()) {
		return &matcher.AssertionError{
			Message:  fmt.Sprintf("expected content-type %q to match /%s/", res.ContentType(), jsonContentType),
			Path:     "headers.content-type",
			Actual:   res.ContentType(),
			Expected: jsonContentType,
		}
	}

	body, err := res.JSON()
	if err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return v.matcher.Match(body, expectedBody)
}

func isEmptyBody(body []byte) bool {
	switch strings.TrimSpace(string(body)) {
	case "", "{}", "[]", "null":
		return true
	}
	return false
}
