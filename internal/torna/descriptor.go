// Package torna implements the Torna OpenAPI wire protocol: the request
// envelope every operation shares, the single-exchange HTTP client, and
// the error classification the tool layer reports through.
package torna

// DefaultVersion is the protocol version sent in every envelope.
const DefaultVersion = "1.0"

// Descriptor names one upstream operation: the dotted interface name and
// the payload that becomes the envelope's data field.
type Descriptor struct {
	Name    string
	Version string
	Payload map[string]any
}

// NewDescriptor returns a Descriptor for name at the default protocol
// version.
func NewDescriptor(name string, payload map[string]any) Descriptor {
	return Descriptor{Name: name, Version: DefaultVersion, Payload: payload}
}
