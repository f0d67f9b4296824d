package torna

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// SuccessCode is the code Torna returns for a successful call.
const SuccessCode = "0"

// Envelope is the body POSTed for every operation. Data carries the
// percent-encoded JSON payload.
type Envelope struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Data        string `json:"data"`
	AccessToken string `json:"access_token"`
}

// Encode builds the envelope for one operation: the payload is JSON
// encoded, then percent encoded so it travels as a plain string field.
// A nil payload encodes as the empty object.
func Encode(d Descriptor, token string) (Envelope, error) {
	payload := d.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode payload for %s: %w", d.Name, err)
	}

	version := d.Version
	if version == "" {
		version = DefaultVersion
	}

	return Envelope{
		Name:        d.Name,
		Version:     version,
		Data:        url.QueryEscape(string(raw)),
		AccessToken: token,
	}, nil
}

// DecodeData reverses the data-field encoding, returning the payload JSON.
func DecodeData(data string) ([]byte, error) {
	raw, err := url.QueryUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data field: %w", err)
	}
	return []byte(raw), nil
}

// Code is the upstream status code. Torna emits it as a JSON string or a
// bare number depending on server version, so it accepts either form.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}

// Success reports whether the code is the success sentinel.
func (c Code) Success() bool {
	return string(c) == SuccessCode
}

// Response is the decoded Torna reply. Raw holds the exact bytes
// received, so JSON rendering can preserve key order and number forms.
type Response struct {
	Code Code            `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`

	Raw []byte `json:"-"`
}

// DecodeResponse parses a reply body into a Response.
func DecodeResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	resp.Raw = body
	return &resp, nil
}
