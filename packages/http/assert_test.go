package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *Response {
	return &Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
		Body:       []byte(body),
	}
}

func TestAssertResponse_NoContent(t *testing.T) {
	tests := []struct {
		name    string
		res     *Response
		wantErr string
	}{
		{name: "empty", res: &Response{StatusCode: 204}},
		{name: "empty object", res: &Response{StatusCode: 204, Body: []byte("{}")}},
		{name: "null body", res: &Response{Body: []byte("null")}},
		{
			name:    "content type present",
			res:     &Response{StatusCode: 204, Headers: map[string]string{"Content-Type": "application/json"}},
			wantErr: `expected content-type "application/json" to be absent at path headers.content-type`,
		},
		{
			name:    "body present",
			res:     &Response{StatusCode: 204, Body: []byte(`{"a":1}`)},
			wantErr: `expected body "{\"a\":1}" to be empty at path body`,
		},
		{
			name:    "status differs",
			res:     &Response{StatusCode: 200},
			wantErr: "expected status 200 to equal 204 at path status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertResponse(tt.res, http.StatusNoContent, nil)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, matcher.IsMismatch(err))
		})
	}
}

func TestAssertResponse_JSON(t *testing.T) {
	id := matcher.NewID()
	body := `{"_id":"` + id.String() + `","__v":0,"createdAt":"2017-03-20T10:00:00Z","name":"John Smith","phones":[{"type":"mobile","number":12345}]}`
	res := jsonResponse(200, body)

	require.NoError(t, AssertResponse(res, 200, map[string]any{
		"_id":       id,
		"__v":       "_mock_",
		"createdAt": "_mock_",
		"name":      regexp.MustCompile(`^John`),
		"phones":    []any{map[string]any{"type": "mobile", "number": "_mock_"}},
	}))

	err := AssertResponse(res, 200, map[string]any{"name": "Jane"})
	require.Error(t, err)
	assert.Equal(t, `expected "John Smith" to equal "Jane" at path name`, err.Error())
}

func TestAssertResponse_ContentType(t *testing.T) {
	res := &Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "text/html"},
		Body:       []byte("<p>hi</p>"),
	}

	err := AssertResponse(res, 200, nil)
	require.Error(t, err)
	assert.Equal(t, `expected content-type "text/html" to match /application/json/ at path headers.content-type`, err.Error())
}

func TestAssertResponse_InvalidBody(t *testing.T) {
	err := AssertResponse(jsonResponse(200, `{"name":`), 200, map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestAssertResponse_NilResponse(t *testing.T) {
	assert.Error(t, AssertResponse(nil, 200, nil))
}

func TestVerifier_CustomSentinel(t *testing.T) {
	v := NewVerifier(matcher.New(matcher.WithSentinel("*")))
	res := jsonResponse(201, `{"token":"abc"}`)

	require.NoError(t, v.AssertResponse(res, 201, map[string]any{"token": "*"}))
}

func TestAssertResponse_Server(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"John","roles":["admin","dev"]}`))
		case "/users/2":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient()

	resp, err := client.Get(context.Background(), server.URL+"/users/1", nil)
	require.NoError(t, err)
	assert.NoError(t, AssertResponse(resp, 200, map[string]any{"name": "John", "roles": []any{"admin", "dev"}}))

	resp, err = client.Get(context.Background(), server.URL+"/users/2", nil)
	require.NoError(t, err)
	assert.NoError(t, AssertResponse(resp, 204, nil))

	resp, err = client.Get(context.Background(), server.URL+"/missing", nil)
	require.NoError(t, err)
	assert.Error(t, AssertResponse(resp, 200, nil))
}
