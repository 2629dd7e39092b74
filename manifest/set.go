package manifest

import (
	"bytes"
	"fmt"

	"github.com/slipway-dev/slipway/domain/model"
	"sigs.k8s.io/yaml"
)

// Document is a parsed manifest document together with its source identity.
type Document struct {
	Kind model.Kind
	// Key identifies the described object. Name or namespace may be empty
	// when the source omitted them; Validate reports those as errors.
	Key model.Key
	// APIVersion as declared in the source document.
	APIVersion string
	// Object holds the typed descriptor: *model.ServiceDescriptor or
	// *model.DeploymentDescriptor, matching Kind.
	Object any
	// Path is the file path from which this document was loaded.
	Path string
	// Index is the 1-based position of this document within its source file.
	// For multi-document YAML files, this indicates which document (1st, 2nd, etc.).
	Index int
}

// Service returns the typed descriptor when the document is a Service.
func (d *Document) Service() (*model.ServiceDescriptor, bool) {
	s, ok := d.Object.(*model.ServiceDescriptor)
	return s, ok
}

// Deployment returns the typed descriptor when the document is a Deployment.
func (d *Document) Deployment() (*model.DeploymentDescriptor, bool) {
	dp, ok := d.Object.(*model.DeploymentDescriptor)
	return dp, ok
}

// Set is an ordered collection of parsed documents. A set is immutable once
// built; registry operations read it but never modify it.
type Set struct {
	docs  []Document
	byKey map[model.Key]int
}

// NewSet builds a set preserving document order. When several documents
// share a key the index keeps the first occurrence; Validate reports such
// duplicates.
func NewSet(docs []Document) *Set {
	s := &Set{
		docs:  make([]Document, len(docs)),
		byKey: make(map[model.Key]int, len(docs)),
	}
	copy(s.docs, docs)
	for i, d := range s.docs {
		if _, ok := s.byKey[d.Key]; !ok {
			s.byKey[d.Key] = i
		}
	}
	return s
}

// Len returns the number of documents in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// Documents returns the documents in source order. The returned slice is a
// copy and may be modified by the caller.
func (s *Set) Documents() []Document {
	if s == nil {
		return nil
	}
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Get returns the first document with the given key.
func (s *Set) Get(k model.Key) (Document, bool) {
	if s == nil {
		return Document{}, false
	}
	i, ok := s.byKey[k]
	if !ok {
		return Document{}, false
	}
	return s.docs[i], true
}

// MarshalYAML renders the set as canonical multi-document YAML in source
// order. The output parses back into an equal set, which lets stored
// revisions round-trip through the registry.
func (s *Set) MarshalYAML() ([]byte, error) {
	if s == nil || len(s.docs) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	for i := range s.docs {
		b, err := yaml.Marshal(s.docs[i].Object)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", s.docs[i].Key, err)
		}
		buf.WriteString("---\n")
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

// Services returns the service descriptors in source order.
func (s *Set) Services() []*model.ServiceDescriptor {
	if s == nil {
		return nil
	}
	var out []*model.ServiceDescriptor
	for i := range s.docs {
		if svc, ok := s.docs[i].Service(); ok {
			out = append(out, svc)
		}
	}
	return out
}

// Deployments returns the deployment descriptors in source order.
func (s *Set) Deployments() []*model.DeploymentDescriptor {
	if s == nil {
		return nil
	}
	var out []*model.DeploymentDescriptor
	for i := range s.docs {
		if dp, ok := s.docs[i].Deployment(); ok {
			out = append(out, dp)
		}
	}
	return out
}
