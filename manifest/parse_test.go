package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/slipway-dev/slipway/domain/model"
)

func mustParse(t *testing.T, data string) *Set {
	t.Helper()
	set, err := Parse([]byte(data), "test.yml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return set
}

func TestParse_SingleDocument(t *testing.T) {
	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  selector:
    app: fluentd
  ports:
  - port: 24224
`
	set, err := Parse([]byte(yamlContent), "fluentd.yml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("Parse() returned %d documents, want 1", set.Len())
	}

	doc := set.Documents()[0]
	if doc.Kind != model.KindService {
		t.Errorf("Document kind = %q, want %q", doc.Kind, model.KindService)
	}
	if doc.APIVersion != "v1" {
		t.Errorf("Document apiVersion = %q, want v1", doc.APIVersion)
	}
	if doc.Path != "fluentd.yml" || doc.Index != 1 {
		t.Errorf("Document source = %s (document %d), want fluentd.yml (document 1)", doc.Path, doc.Index)
	}

	svc, ok := doc.Service()
	if !ok {
		t.Fatalf("Document object is not *model.ServiceDescriptor, got %T", doc.Object)
	}
	if svc.Metadata.Name != "fluentd" {
		t.Errorf("Service name = %q, want fluentd", svc.Metadata.Name)
	}
	if len(svc.Spec.Ports) != 1 || svc.Spec.Ports[0].Port != 24224 {
		t.Errorf("Service ports = %v, want one port 24224", svc.Spec.Ports)
	}
}

func TestParse_MultiDocument(t *testing.T) {
	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: netconf
  namespace: voltha
spec:
  selector:
    app: netconf
  ports:
  - port: 830
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: netconf
  namespace: voltha
spec:
  selector:
    matchLabels:
      app: netconf
  template:
    metadata:
      labels:
        app: netconf
    spec:
      containers:
      - name: netconf
        image: voltha/netconf:latest
        ports:
        - containerPort: 830
`
	set := mustParse(t, yamlContent)
	if set.Len() != 2 {
		t.Fatalf("Parse() returned %d documents, want 2", set.Len())
	}

	docs := set.Documents()
	if docs[0].Kind != model.KindService {
		t.Errorf("Document 0 kind = %q, want Service", docs[0].Kind)
	}
	if docs[1].Kind != model.KindDeployment {
		t.Errorf("Document 1 kind = %q, want Deployment", docs[1].Kind)
	}
	if docs[1].Index != 2 {
		t.Errorf("Document 1 index = %d, want 2", docs[1].Index)
	}

	dep, ok := docs[1].Deployment()
	if !ok {
		t.Fatalf("Document 1 object is not *model.DeploymentDescriptor, got %T", docs[1].Object)
	}
	if got := dep.Spec.Template.Spec.Containers[0].Ports[0].ContainerPort; got != 830 {
		t.Errorf("Deployment containerPort = %d, want 830", got)
	}

	key := model.Key{Kind: model.KindDeployment, Namespace: "voltha", Name: "netconf"}
	if _, ok := set.Get(key); !ok {
		t.Errorf("Set.Get(%v) not found", key)
	}
}

func TestParse_SkipsEmptyDocuments(t *testing.T) {
	yamlContent := `---
apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  selector:
    app: fluentd
  ports:
  - port: 24224
---
---
`
	set := mustParse(t, yamlContent)
	if set.Len() != 1 {
		t.Fatalf("Parse() returned %d documents, want 1", set.Len())
	}
}

func TestParse_JSONDocument(t *testing.T) {
	jsonContent := `{
  "apiVersion": "v1",
  "kind": "Service",
  "metadata": {"name": "fluentd", "namespace": "voltha"},
  "spec": {"selector": {"app": "fluentd"}, "ports": [{"port": 24224}]}
}`
	set := mustParse(t, jsonContent)
	if set.Len() != 1 {
		t.Fatalf("Parse() returned %d documents, want 1", set.Len())
	}
	if set.Documents()[0].Kind != model.KindService {
		t.Errorf("Document kind = %q, want Service", set.Documents()[0].Kind)
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  ports: "not-a-list"
`
	_, err := Parse([]byte(yamlContent), "broken.yml")
	if err == nil {
		t.Fatal("Parse() expected error for malformed document, got nil")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error type = %T, want *ParseError", err)
	}
	if perr.Kind != MalformedDocument {
		t.Errorf("ParseError kind = %q, want %q", perr.Kind, MalformedDocument)
	}
	if perr.Path != "broken.yml" || perr.Index != 1 {
		t.Errorf("ParseError source = %s (document %d), want broken.yml (document 1)", perr.Path, perr.Index)
	}
}

func TestParse_MissingKind(t *testing.T) {
	yamlContent := `apiVersion: v1
metadata:
  name: fluentd
  namespace: voltha
`
	_, err := Parse([]byte(yamlContent), "test.yml")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if perr.Kind != MalformedDocument {
		t.Errorf("ParseError kind = %q, want %q", perr.Kind, MalformedDocument)
	}
}

func TestParse_MissingAPIVersion(t *testing.T) {
	yamlContent := `kind: Service
metadata:
  name: fluentd
  namespace: voltha
`
	_, err := Parse([]byte(yamlContent), "test.yml")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if perr.Kind != MalformedDocument {
		t.Errorf("ParseError kind = %q, want %q", perr.Kind, MalformedDocument)
	}
}

func TestParse_UnknownKind(t *testing.T) {
	yamlContent := `apiVersion: v1
kind: ConfigMap
metadata:
  name: fluentd-config
  namespace: voltha
data:
  fluentd.conf: ""
`
	_, err := Parse([]byte(yamlContent), "test.yml")
	if err == nil {
		t.Fatal("Parse() expected error for unknown kind, got nil")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error type = %T, want *ParseError", err)
	}
	if perr.Kind != UnknownKind {
		t.Errorf("ParseError kind = %q, want %q", perr.Kind, UnknownKind)
	}
}

func TestParse_AbortsWholeSet(t *testing.T) {
	// A bad second document fails the parse even though the first is fine.
	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  selector:
    app: fluentd
  ports:
  - port: 24224
---
apiVersion: v1
kind: Gadget
metadata:
  name: g1
  namespace: voltha
`
	set, err := Parse([]byte(yamlContent), "test.yml")
	if err == nil {
		t.Fatal("Parse() expected error, got nil")
	}
	if set != nil {
		t.Errorf("Parse() returned a partial set alongside the error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error type = %T, want *ParseError", err)
	}
	if perr.Index != 2 {
		t.Errorf("ParseError index = %d, want 2", perr.Index)
	}
}

func TestParseFile_Testdata(t *testing.T) {
	set, err := ParseFile(filepath.Join("testdata", "fluentd.yml"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("ParseFile() returned %d documents, want 2", set.Len())
	}

	svcs := set.Services()
	if len(svcs) != 1 {
		t.Fatalf("Set.Services() returned %d services, want 1", len(svcs))
	}
	if !svcs[0].Headless() {
		t.Errorf("fluentd service should be headless (clusterIP: None)")
	}
	deps := set.Deployments()
	if len(deps) != 1 {
		t.Fatalf("Set.Deployments() returned %d deployments, want 1", len(deps))
	}
	if deps[0].APIVersion != "apps/v1beta1" {
		t.Errorf("fluentd deployment apiVersion = %q, want apps/v1beta1", deps[0].APIVersion)
	}
}

func TestParsePath_Directory(t *testing.T) {
	set, err := ParsePath("testdata")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	if set.Len() != 4 {
		t.Fatalf("ParsePath() returned %d documents, want 4", set.Len())
	}

	// filepath.Walk visits files in lexical order: fluentd.yml before
	// netconf.yml.
	docs := set.Documents()
	if docs[0].Key.Name != "fluentd" || docs[2].Key.Name != "netconf" {
		t.Errorf("unexpected document order: %s, %s", docs[0].Key, docs[2].Key)
	}
}

func TestParsePath_File(t *testing.T) {
	set, err := ParsePath(filepath.Join("testdata", "netconf.yml"))
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("ParsePath() returned %d documents, want 2", set.Len())
	}
}

func TestParsePath_InvalidPath(t *testing.T) {
	if _, err := ParsePath("/nonexistent/path/file.yaml"); err == nil {
		t.Error("ParsePath() expected error for nonexistent path, got nil")
	}
}

func TestParsePath_IgnoresOtherExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	yamlFile := filepath.Join(tmpDir, "svc.yaml")
	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  selector:
    app: fluentd
  ports:
  - port: 24224
`
	if err := os.WriteFile(yamlFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("not yaml"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	set, err := ParsePath(tmpDir)
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("ParsePath() returned %d documents, want 1", set.Len())
	}
}
