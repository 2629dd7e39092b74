package naming

import (
	"strings"
	"testing"
)

func TestValidateObjectName(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid short", value: "fluentd", wantErr: false},
		{name: "valid with hyphen", value: "netconf-agent", wantErr: false},
		{name: "valid max length", value: strings.Repeat("a", objectNameMaxLength), wantErr: false},
		{name: "too long", value: strings.Repeat("a", objectNameMaxLength+1), wantErr: true},
		{name: "contains uppercase", value: "Fluentd", wantErr: true},
		{name: "starts with hyphen", value: "-fluentd", wantErr: true},
		{name: "ends with hyphen", value: "fluentd-", wantErr: true},
		{name: "contains underscore", value: "flu_entd", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateObjectName(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateNamespace(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "voltha", wantErr: false},
		{name: "valid default", value: "default", wantErr: false},
		{name: "contains dot", value: "vol.tha", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNamespace(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePortName(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty allowed", value: "", wantErr: false},
		{name: "valid", value: "forward", wantErr: false},
		{name: "valid with digits", value: "netconf-830", wantErr: false},
		{name: "too long", value: strings.Repeat("a", portNameMaxLength+1), wantErr: true},
		{name: "all digits", value: "24224", wantErr: true},
		{name: "uppercase", value: "Forward", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePortName(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
