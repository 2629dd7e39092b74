package manifest

import (
	"strings"
	"testing"

	"github.com/slipway-dev/slipway/domain/model"
)

func TestDiff_IdenticalSets(t *testing.T) {
	set := mustParse(t, validPairYAML)
	if changes := Diff(set, set); len(changes) != 0 {
		t.Errorf("Diff(S, S) returned %d changes, want 0: %v", len(changes), changes)
	}

	// Reparsing the same text must compare equal too.
	again := mustParse(t, validPairYAML)
	if changes := Diff(set, again); len(changes) != 0 {
		t.Errorf("Diff over reparsed identical text returned %d changes, want 0", len(changes))
	}
}

func TestDiff_FromEmptySet(t *testing.T) {
	set := mustParse(t, validPairYAML)

	changes := Diff(NewSet(nil), set)
	if len(changes) != set.Len() {
		t.Fatalf("Diff(empty, S) returned %d changes, want %d", len(changes), set.Len())
	}
	for _, c := range changes {
		if c.Op != OpAdded {
			t.Errorf("change %v op = %q, want Added", c.Key, c.Op)
		}
		if c.Old != nil || c.New == nil {
			t.Errorf("Added change %v should carry only New", c.Key)
		}
	}

	// nil behaves as the empty set.
	if changes := Diff(nil, set); len(changes) != set.Len() {
		t.Errorf("Diff(nil, S) returned %d changes, want %d", len(changes), set.Len())
	}
}

func TestDiff_ToEmptySet(t *testing.T) {
	set := mustParse(t, validPairYAML)
	changes := Diff(set, nil)
	if len(changes) != set.Len() {
		t.Fatalf("Diff(S, empty) returned %d changes, want %d", len(changes), set.Len())
	}
	for _, c := range changes {
		if c.Op != OpRemoved {
			t.Errorf("change %v op = %q, want Removed", c.Key, c.Op)
		}
	}
}

func TestDiff_Modified(t *testing.T) {
	oldSet := mustParse(t, validPairYAML)
	newSet := mustParse(t, strings.Replace(validPairYAML, "replicas: 1", "replicas: 3", 1))

	changes := Diff(oldSet, newSet)
	if len(changes) != 1 {
		t.Fatalf("Diff() returned %d changes, want 1: %v", len(changes), changes)
	}

	c := changes[0]
	if c.Op != OpModified {
		t.Errorf("change op = %q, want Modified", c.Op)
	}
	wantKey := model.Key{Kind: model.KindDeployment, Namespace: "voltha", Name: "fluentd"}
	if c.Key != wantKey {
		t.Errorf("change key = %v, want %v", c.Key, wantKey)
	}
	if c.Old == nil || c.New == nil {
		t.Fatal("Modified change should carry both Old and New")
	}
	oldDep, _ := c.Old.Deployment()
	newDep, _ := c.New.Deployment()
	if *oldDep.Spec.Replicas != 1 || *newDep.Spec.Replicas != 3 {
		t.Errorf("replicas = %d -> %d, want 1 -> 3", *oldDep.Spec.Replicas, *newDep.Spec.Replicas)
	}
}

func TestDiff_VersionBumpIsModification(t *testing.T) {
	oldSet := mustParse(t, validPairYAML)
	newSet := mustParse(t, strings.Replace(validPairYAML, "apps/v1beta1", "apps/v1beta2", 1))

	changes := Diff(oldSet, newSet)
	if len(changes) != 1 || changes[0].Op != OpModified {
		t.Fatalf("Diff() = %v, want one Modified change for the apiVersion bump", changes)
	}
}

func TestDiff_AddRemoveModify(t *testing.T) {
	oldYAML := `apiVersion: v1
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
  name: netconf
  namespace: voltha
spec:
  selector:
    app: netconf
  ports:
  - port: 830
`
	newYAML := `apiVersion: v1
kind: Service
metadata:
  name: netconf
  namespace: voltha
spec:
  selector:
    app: netconf
  ports:
  - port: 830
    nodePort: 30830
---
apiVersion: v1
kind: Service
metadata:
  name: grafana
  namespace: voltha
spec:
  selector:
    app: grafana
  ports:
  - port: 3000
`
	changes := Diff(mustParse(t, oldYAML), mustParse(t, newYAML))
	if len(changes) != 3 {
		t.Fatalf("Diff() returned %d changes, want 3: %v", len(changes), changes)
	}

	// Sorted by kind, namespace, then name: fluentd, grafana, netconf.
	wantOps := map[string]Op{
		"fluentd": OpRemoved,
		"grafana": OpAdded,
		"netconf": OpModified,
	}
	wantOrder := []string{"fluentd", "grafana", "netconf"}
	for i, c := range changes {
		if c.Key.Name != wantOrder[i] {
			t.Errorf("changes[%d] key = %v, want name %s", i, c.Key, wantOrder[i])
		}
		if c.Op != wantOps[c.Key.Name] {
			t.Errorf("change %s op = %q, want %q", c.Key.Name, c.Op, wantOps[c.Key.Name])
		}
	}

	if got := changes.Summary(); got != "1 added, 1 removed, 1 modified" {
		t.Errorf("Summary() = %q, want %q", got, "1 added, 1 removed, 1 modified")
	}
}

func TestDiff_OrderIndependentOfInput(t *testing.T) {
	forward := mustParse(t, validPairYAML)

	// The same documents in reverse source order.
	parts := strings.SplitN(validPairYAML, "---\n", 2)
	reversed := mustParse(t, parts[1]+"---\n"+parts[0])

	a := Diff(NewSet(nil), forward)
	b := Diff(NewSet(nil), reversed)
	if len(a) != len(b) {
		t.Fatalf("change counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Key != b[i].Key || a[i].Op != b[i].Op {
			t.Errorf("changes[%d] differ: %v/%v vs %v/%v", i, a[i].Key, a[i].Op, b[i].Key, b[i].Op)
		}
	}
	if a[0].Key.Kind != model.KindService {
		t.Errorf("services should sort before deployments, got %v first", a[0].Key)
	}
}

func TestDiff_ServicesSortBeforeDeployments(t *testing.T) {
	set := mustParse(t, validPairYAML)
	changes := Diff(nil, set)
	if changes[0].Key.Kind != model.KindService || changes[1].Key.Kind != model.KindDeployment {
		t.Errorf("unexpected kind order: %v, %v", changes[0].Key, changes[1].Key)
	}
}
