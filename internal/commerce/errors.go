package commerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/imvikashdev/storefront/pkg/httpclient"
)

// RequestError is the single failure type for commerce API calls. Every
// failure path (transport error, unparseable response, structured server
// rejection) converges here with one human-readable message. StatusCode is
// zero for transport-level failures that never produced a response.
type RequestError struct {
	Message    string
	StatusCode int
}

func (e *RequestError) Error() string {
	return e.Message
}

// errorBody mirrors the commerce API error shape
// {message: string | string[], statusCode, error?}.
type errorBody struct {
	Message    messageField `json:"message"`
	StatusCode int          `json:"statusCode"`
	ErrorText  string       `json:"error"`
}

// messageField accepts either a single string or a list of strings; lists
// are joined with ", " for display, matching the contract.
type messageField string

func (m *messageField) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = messageField(single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*m = messageField(strings.Join(many, ", "))
		return nil
	}

	return fmt.Errorf("message is neither string nor string list")
}

// parseErrorResponse reads a non-2xx response body and normalizes it. The
// body is fully consumed and closed.
func parseErrorResponse(resp *http.Response) *RequestError {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		body = nil
	}

	return parseErrorBytes(resp.StatusCode, body)
}

// parseErrorBytes decodes a structured error body, falling back to the HTTP
// status text when the body does not match the contract.
func parseErrorBytes(statusCode int, body []byte) *RequestError {
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil && eb.Message != "" {
		return &RequestError{
			Message:    string(eb.Message),
			StatusCode: statusCode,
		}
	}

	msg := http.StatusText(statusCode)
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", statusCode)
	}
	return &RequestError{
		Message:    msg,
		StatusCode: statusCode,
	}
}

// normalizeError folds any error from the transport layer into a
// *RequestError. 5xx responses arrive as *httpclient.ServerError with the
// body preserved, so the server's message still surfaces verbatim.
func normalizeError(err error) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	var srvErr *httpclient.ServerError
	if errors.As(err, &srvErr) {
		return parseErrorBytes(srvErr.StatusCode, srvErr.Body)
	}

	if errors.Is(err, httpclient.ErrCircuitOpen) {
		return &RequestError{Message: "commerce service is temporarily unavailable, please try again shortly"}
	}

	return &RequestError{Message: "network error: " + err.Error()}
}
