package scene

import (
	"errors"
	"testing"
)

func TestExtractStringField(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{"quoted", `{"status":"healthy"}`, "healthy", nil},
		{"spaces around colon", `{ "status" :  "ok" }`, "ok", nil},
		{"first match wins", `{"status":"a","nested":{"status":"b"}}`, "a", nil},
		{"unterminated quote", `{"status":"degraded`, "degraded", nil},
		{"unquoted number", `{"status": 200, "x":1}`, "200", nil},
		{"unquoted last", `{"status": true }`, "true", nil},
		{"unquoted no delimiter", `{"status": up  `, "up", nil},
		{"missing field", `{"other":"x"}`, "", errFieldMissing},
		{"no colon", `{"status"}`, "", errSeparatorMissing},
		{"empty unquoted", `{"status":}`, "", errEmptyValue},
		{"empty quoted", `{"status":""}`, "", errEmptyValue},
		{"whitespace only", `{"status":   `, "", errEmptyValue},
		{"empty body", ``, "", errFieldMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractStringField([]byte(tt.body), "status")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractStringField_MatchInsideValue(t *testing.T) {
	// "status" as a value is matched before the real key.
	body := `{"msg":"status","code":5,"status":"real"}`
	got, err := extractStringField([]byte(body), "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
}
