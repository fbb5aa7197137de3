package client

import (
	"encoding/json"
	"fmt"
)

const defaultRequestID = 1

type requestBody struct {
	Version string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type responseBody struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// RPCError is a JSON-RPC error object as returned by NEAR nodes,
// including the structured name/cause fields newer nodes emit.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Name    string          `json:"name,omitempty"`
	Cause   *RPCErrorCause  `json:"cause,omitempty"`
}

// RPCErrorCause is the structured cause of an RPCError.
type RPCErrorCause struct {
	Name string          `json:"name"`
	Info json.RawMessage `json:"info,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("json-rpc error %v (%v/%v): %v", e.Code, e.Name, e.Cause.Name, e.Message)
	}
	return fmt.Sprintf("json-rpc error %v: %v", e.Code, e.Message)
}

// HTTPError is a non-200 HTTP response that survived the retry policy.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("wrong response status %v. message: %v", e.StatusCode, e.Body)
}

// Retryable report whether the status is a known-transient class
func (e *HTTPError) Retryable() bool {
	return IsRetryableStatus(e.StatusCode)
}

// Call invoke a JSON-RPC method and unmarshal the result. Returned
// errors are either transport errors, *HTTPError, *RPCError, or
// unmarshal failures.
func (c *Client) Call(result interface{}, method string, params interface{}) error {
	body := &requestBody{
		Version: "2.0",
		ID:      defaultRequestID,
		Method:  method,
		Params:  params,
	}
	resp, err := c.resty.R().SetBody(body).Post(c.url)
	if err != nil {
		return fmt.Errorf("rpc post failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return &HTTPError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	var jsonResp responseBody
	if err := json.Unmarshal(resp.Body(), &jsonResp); err != nil {
		return fmt.Errorf("unmarshal rpc response: %w", err)
	}
	if jsonResp.Error != nil {
		return jsonResp.Error
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(jsonResp.Result, result); err != nil {
		return fmt.Errorf("unmarshal rpc result: %w", err)
	}
	return nil
}
