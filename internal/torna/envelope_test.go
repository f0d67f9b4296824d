package torna

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"simple", map[string]any{"id": "123"}},
		{"nested", map[string]any{
			"apis": []any{map[string]any{
				"name":     "用户接口",
				"url":      "/api/users?x=1&y=2",
				"isFolder": false,
			}},
		}},
		{"spaces and symbols", map[string]any{"name": "a b+c%d"}},
		{"empty", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Encode(NewDescriptor("doc.push", tt.payload), "tok")
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			raw, err := DecodeData(env.Data)
			if err != nil {
				t.Fatalf("DecodeData failed: %v", err)
			}

			var got map[string]any
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("decoded data is not JSON: %v", err)
			}
			if !reflect.DeepEqual(got, tt.payload) {
				t.Errorf("round trip mismatch: got %v, want %v", got, tt.payload)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	payload := map[string]any{"b": "2", "a": "1", "c": []any{"x", "y"}}

	first, err := Encode(NewDescriptor("dict.create", payload), "tok")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second, err := Encode(NewDescriptor("dict.create", payload), "tok")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if first != second {
		t.Errorf("identical input produced different envelopes:\n%+v\n%+v", first, second)
	}
}

func TestEncodeNilPayload(t *testing.T) {
	env, err := Encode(Descriptor{Name: "module.get"}, "tok")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if env.Data != "%7B%7D" {
		t.Errorf("nil payload encoded as %q, want %q", env.Data, "%7B%7D")
	}
	if env.Version != DefaultVersion {
		t.Errorf("version = %q, want %q", env.Version, DefaultVersion)
	}
}

func TestEnvelopeWireShape(t *testing.T) {
	env, err := Encode(NewDescriptor("doc.list", map[string]any{"limit": 20}), "secret-token")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"name", "version", "data", "access_token"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("wire body missing %q field", key)
		}
	}
	if wire["name"] != "doc.list" {
		t.Errorf("name = %v, want doc.list", wire["name"])
	}
	if wire["access_token"] != "secret-token" {
		t.Errorf("access_token = %v, want secret-token", wire["access_token"])
	}
}

func TestCodeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		success bool
	}{
		{"string zero", `{"code":"0"}`, "0", true},
		{"number zero", `{"code":0}`, "0", true},
		{"string error", `{"code":"10007"}`, "10007", false},
		{"negative number", `{"code":-1}`, "-1", false},
		{"null", `{"code":null}`, "", false},
		{"absent", `{}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeResponse failed: %v", err)
			}
			if string(resp.Code) != tt.want {
				t.Errorf("code = %q, want %q", resp.Code, tt.want)
			}
			if resp.Code.Success() != tt.success {
				t.Errorf("success = %v, want %v", resp.Code.Success(), tt.success)
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	body := []byte(`{"code":"0","msg":"success","data":{"id":"d1"}}`)
	resp, err := DecodeResponse(body)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.Msg != "success" {
		t.Errorf("msg = %q, want success", resp.Msg)
	}
	if string(resp.Raw) != string(body) {
		t.Errorf("raw bytes not preserved")
	}
	if string(resp.Data) != `{"id":"d1"}` {
		t.Errorf("data = %s", resp.Data)
	}

	if _, err := DecodeResponse([]byte("<html>not json</html>")); err == nil {
		t.Error("expected error for non-JSON body")
	}
}
