package manifest

import (
	"strings"
	"testing"

	"github.com/slipway-dev/slipway/domain/model"
)

const validPairYAML = `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  clusterIP: None
  selector:
    app: fluentd
  ports:
  - port: 24224
    targetPort: 24224
---
apiVersion: apps/v1beta1
kind: Deployment
metadata:
  name: fluentd
  namespace: voltha
spec:
  replicas: 1
  template:
    metadata:
      labels:
        app: fluentd
    spec:
      containers:
      - name: fluentd
        image: fluent/fluentd:v0.12.42
        ports:
        - containerPort: 24224
`

func TestValidate_HappyPath(t *testing.T) {
	set := mustParse(t, validPairYAML)
	result := Validate(set)
	if result.HasErrors() {
		t.Errorf("Validate() returned errors: %v", result.Errors)
	}
	if set.Len() != 2 {
		t.Errorf("document count changed across validation: got %d, want 2", set.Len())
	}
}

func TestValidate_Testdata(t *testing.T) {
	set, err := ParsePath("testdata")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	result := Validate(set)
	if result.HasErrors() {
		t.Errorf("Validate() returned errors: %v", result.Errors)
	}
	if set.Len() != 4 {
		t.Errorf("document count changed across validation: got %d, want 4", set.Len())
	}
}

func TestValidate_TargetPortDefaultsToPort(t *testing.T) {
	// targetPort omitted: the service port doubles as the pod port.
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
apiVersion: apps/v1beta1
kind: Deployment
metadata:
  name: fluentd
  namespace: voltha
spec:
  template:
    metadata:
      labels:
        app: fluentd
    spec:
      containers:
      - name: fluentd
        image: fluent/fluentd:v0.12.42
        ports:
        - containerPort: 24224
`
	result := Validate(mustParse(t, yamlContent))
	if result.HasErrors() {
		t.Errorf("Validate() returned errors: %v", result.Errors)
	}
}

func TestValidate_DanglingTargetPort(t *testing.T) {
	// netconf exposes 830 but no selected deployment declares it.
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
    targetPort: 830
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
        - containerPort: 8443
`
	result := Validate(mustParse(t, yamlContent))
	if !result.HasErrors() {
		t.Fatal("Validate() expected errors for dangling targetPort, got none")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Validate() returned %d errors, want 1: %v", len(result.Errors), result.Errors)
	}

	err := result.Errors[0]
	if err.Kind != DanglingReference {
		t.Errorf("Error kind = %q, want %q", err.Kind, DanglingReference)
	}
	wantKey := model.Key{Kind: model.KindService, Namespace: "voltha", Name: "netconf"}
	if err.Key != wantKey {
		t.Errorf("Error key = %v, want %v", err.Key, wantKey)
	}
	if err.Field != "spec.ports[0].targetPort" {
		t.Errorf("Error field = %q, want spec.ports[0].targetPort", err.Field)
	}
	if !strings.Contains(err.Error(), "830") {
		t.Errorf("Error message should name the port: %v", err)
	}
}

func TestValidate_NoDeploymentMatchesSelector(t *testing.T) {
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
`
	result := Validate(mustParse(t, yamlContent))
	if len(result.Errors) != 1 {
		t.Fatalf("Validate() returned %d errors, want 1: %v", len(result.Errors), result.Errors)
	}
	err := result.Errors[0]
	if err.Kind != DanglingReference {
		t.Errorf("Error kind = %q, want %q", err.Kind, DanglingReference)
	}
	if !strings.Contains(err.Message, "no deployment matches selector") {
		t.Errorf("Error message = %q, want selector mention", err.Message)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	cases := []struct {
		name      string
		yaml      string
		wantField string
	}{
		{
			name: "service missing name",
			yaml: `apiVersion: v1
kind: Service
metadata:
  namespace: voltha
spec:
  selector:
    app: x
  ports:
  - port: 24224
`,
			wantField: "metadata.name",
		},
		{
			name: "service missing namespace",
			yaml: `apiVersion: v1
kind: Service
metadata:
  name: fluentd
spec:
  selector:
    app: x
  ports:
  - port: 24224
`,
			wantField: "metadata.namespace",
		},
		{
			name: "service missing selector",
			yaml: `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  ports:
  - port: 24224
`,
			wantField: "spec.selector",
		},
		{
			name: "deployment missing containers",
			yaml: `apiVersion: apps/v1beta1
kind: Deployment
metadata:
  name: fluentd
  namespace: voltha
spec:
  template:
    metadata:
      labels:
        app: fluentd
    spec: {}
`,
			wantField: "spec.template.spec.containers",
		},
		{
			name: "deployment missing selector on apps/v1",
			yaml: `apiVersion: apps/v1
kind: Deployment
metadata:
  name: fluentd
  namespace: voltha
spec:
  template:
    metadata:
      labels:
        app: fluentd
    spec:
      containers:
      - name: fluentd
        image: fluent/fluentd:v0.12.42
`,
			wantField: "spec.selector",
		},
		{
			name: "container missing image",
			yaml: `apiVersion: apps/v1beta1
kind: Deployment
metadata:
  name: fluentd
  namespace: voltha
spec:
  template:
    metadata:
      labels:
        app: fluentd
    spec:
      containers:
      - name: fluentd
`,
			wantField: "spec.template.spec.containers[0].image",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(mustParse(t, tc.yaml))
			if !result.HasErrors() {
				t.Fatal("Validate() expected errors, got none")
			}
			found := false
			for _, e := range result.Errors {
				if e.Kind == MissingField && e.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no MissingField error for %q in %v", tc.wantField, result.Errors)
			}
		})
	}
}

func TestValidate_DanglingVolumeMount(t *testing.T) {
	yamlContent := `apiVersion: apps/v1beta1
kind: Deployment
metadata:
  name: fluentd
  namespace: voltha
spec:
  template:
    metadata:
      labels:
        app: fluentd
    spec:
      containers:
      - name: fluentd
        image: fluent/fluentd:v0.12.42
        volumeMounts:
        - name: fluentd-config
          mountPath: /etc/fluentd-config
      volumes:
      - name: other-volume
        emptyDir: {}
`
	result := Validate(mustParse(t, yamlContent))
	if len(result.Errors) != 1 {
		t.Fatalf("Validate() returned %d errors, want 1: %v", len(result.Errors), result.Errors)
	}
	err := result.Errors[0]
	if err.Kind != DanglingReference {
		t.Errorf("Error kind = %q, want %q", err.Kind, DanglingReference)
	}
	if err.Field != "spec.template.spec.containers[0].volumeMounts[0].name" {
		t.Errorf("Error field = %q", err.Field)
	}
	if !strings.Contains(err.Message, "fluentd-config") {
		t.Errorf("Error message should name the mount: %q", err.Message)
	}
}

func TestValidate_DuplicateKeys(t *testing.T) {
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
	result := Validate(mustParse(t, yamlContent))
	found := false
	for _, e := range result.Errors {
		if e.Kind == Duplicate && e.Index == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("no Duplicate error for second document in %v", result.Errors)
	}
}

func TestValidate_UnsupportedVersion(t *testing.T) {
	yamlContent := `apiVersion: v2
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
	result := Validate(mustParse(t, yamlContent))
	found := false
	for _, e := range result.Errors {
		if e.Kind == UnsupportedVersion && e.Field == "apiVersion" {
			found = true
		}
	}
	if !found {
		t.Errorf("no UnsupportedVersion error in %v", result.Errors)
	}
}

func TestValidate_SelectorMismatch(t *testing.T) {
	yamlContent := `apiVersion: apps/v1
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
        app: something-else
    spec:
      containers:
      - name: netconf
        image: voltha/netconf:latest
`
	result := Validate(mustParse(t, yamlContent))
	found := false
	for _, e := range result.Errors {
		if e.Kind == SelectorMismatch {
			found = true
		}
	}
	if !found {
		t.Errorf("no SelectorMismatch error in %v", result.Errors)
	}
}

func TestValidate_InvalidNames(t *testing.T) {
	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: Fluentd
  namespace: voltha
spec:
  selector:
    app: fluentd
  ports:
  - port: 24224
`
	set, err := Parse([]byte(yamlContent), "test.yml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	result := Validate(set)
	found := false
	for _, e := range result.Errors {
		if e.Kind == InvalidValue && e.Field == "metadata.name" {
			found = true
		}
	}
	if !found {
		t.Errorf("no InvalidValue error for metadata.name in %v", result.Errors)
	}
}

func TestValidate_PortOutOfRange(t *testing.T) {
	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  selector:
    app: fluentd
  ports:
  - port: 70000
`
	result := Validate(mustParse(t, yamlContent))
	found := false
	for _, e := range result.Errors {
		if e.Kind == InvalidValue && e.Field == "spec.ports[0].port" {
			found = true
		}
	}
	if !found {
		t.Errorf("no InvalidValue error for out-of-range port in %v", result.Errors)
	}
}

func TestValidate_EmptySet(t *testing.T) {
	result := Validate(NewSet(nil))
	if result.HasErrors() {
		t.Errorf("Validate() on empty set returned errors: %v", result.Errors)
	}
	if Validate(nil).HasErrors() {
		t.Error("Validate(nil) returned errors")
	}
}

func TestValidationResult_Err(t *testing.T) {
	set := mustParse(t, validPairYAML)
	if err := Validate(set).Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}

	yamlContent := `apiVersion: v1
kind: Service
metadata:
  name: fluentd
  namespace: voltha
spec:
  ports:
  - port: 24224
`
	err := Validate(mustParse(t, yamlContent)).Err()
	if err == nil {
		t.Fatal("Err() = nil, want validation error")
	}
	if !strings.Contains(err.Error(), "voltha/fluentd") {
		t.Errorf("Err() message should name the document: %v", err)
	}
}
