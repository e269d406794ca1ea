// Package http checks the shape of JSON API responses.
//
// It provides:
//   - A small client that records status, headers, body and duration
//   - Conversion of net/http responses into Response values
//   - The response contract: 204 responses carry no content type and no
//     body, every other response is JSON whose body matches a pattern
package http
