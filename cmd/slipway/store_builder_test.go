package main

import (
	"strings"
	"testing"
)

func TestBuildRevisionRepository(t *testing.T) {
	tests := []struct {
		name     string
		storeURL string
		wantErr  string
	}{
		{name: "memory", storeURL: "memory:"},
		{name: "unsupported", storeURL: "postgres://localhost/slipway", wantErr: "unsupported store scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			if err := root.PersistentFlags().Set("store-url", tt.storeURL); err != nil {
				t.Fatalf("setting store-url: %v", err)
			}

			repo, err := buildRevisionRepository(root)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("buildRevisionRepository() error = %v, want contains %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildRevisionRepository() error = %v", err)
			}
			if repo == nil {
				t.Fatalf("buildRevisionRepository() returned nil repository")
			}
		})
	}
}
