package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	k8syaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/yaml"

	"github.com/slipway-dev/slipway/domain/model"
)

// maxFileSize is the maximum manifest file size in bytes to read (10MB).
const maxFileSize = 10 * 1024 * 1024

// Parse parses multi-document manifest text (YAML or JSON) into a Set.
// Each document is decoded into a typed descriptor chosen by its kind
// discriminator. Empty documents are skipped. Any decode failure aborts the
// whole parse; there are no partial sets. The source argument names the
// input in errors and document identities and may be empty.
func Parse(data []byte, source string) (*Set, error) {
	decoder := k8syaml.NewYAMLOrJSONDecoder(bytes.NewReader(data), 4096)

	var docs []Document
	docIndex := 0
	for {
		docIndex++
		doc, err := decodeDocument(decoder, source, docIndex)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return NewSet(docs), nil
}

// ParseFile parses manifest documents from a single file.
func ParseFile(path string) (*Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat path %q: %w", path, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("file %q exceeds max size %d bytes", path, maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", path, err)
	}
	return Parse(data, path)
}

// ParsePath parses manifests from the given path. If the path is a
// directory, it recursively scans for .yml and .yaml files; files are
// visited in lexical order so the resulting set order is stable.
func ParsePath(path string) (*Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat path %q: %w", path, err)
	}
	if !info.IsDir() {
		return ParseFile(path)
	}

	var docs []Document
	walkErr := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}
		set, err := ParseFile(p)
		if err != nil {
			return err
		}
		docs = append(docs, set.docs...)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return NewSet(docs), nil
}

// decodeDocument decodes a single document from the YAML stream.
func decodeDocument(decoder *k8syaml.YAMLOrJSONDecoder, source string, docIndex int) (*Document, error) {
	// First decode into a generic map to inspect apiVersion and kind
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, &ParseError{
			Kind:    MalformedDocument,
			Message: fmt.Sprintf("cannot decode document: %v", err),
			Path:    source,
			Index:   docIndex,
			Err:     err,
		}
	}

	// Skip empty documents
	if len(raw) == 0 {
		return nil, nil
	}

	apiVersion, ok := raw["apiVersion"].(string)
	if !ok || apiVersion == "" {
		return nil, &ParseError{
			Kind:    MalformedDocument,
			Message: "missing or invalid apiVersion",
			Path:    source,
			Index:   docIndex,
		}
	}

	kind, ok := raw["kind"].(string)
	if !ok || kind == "" {
		return nil, &ParseError{
			Kind:    MalformedDocument,
			Message: "missing or invalid kind",
			Path:    source,
			Index:   docIndex,
		}
	}

	return decodeKindDocument(raw, kind, apiVersion, source, docIndex)
}

// decodeKindDocument decodes a document into the descriptor type selected by
// its kind discriminator.
func decodeKindDocument(raw map[string]any, kind, apiVersion, source string, docIndex int) (*Document, error) {
	var obj any
	var key model.Key
	switch model.Kind(kind) {
	case model.KindService:
		var svc model.ServiceDescriptor
		if err := mapToStruct(raw, &svc); err != nil {
			return nil, &ParseError{
				Kind:    MalformedDocument,
				Message: fmt.Sprintf("parsing Service: %v", err),
				Path:    source,
				Index:   docIndex,
				Err:     err,
			}
		}
		obj = &svc
		key = svc.Key()
	case model.KindDeployment:
		var dep model.DeploymentDescriptor
		if err := mapToStruct(raw, &dep); err != nil {
			return nil, &ParseError{
				Kind:    MalformedDocument,
				Message: fmt.Sprintf("parsing Deployment: %v", err),
				Path:    source,
				Index:   docIndex,
				Err:     err,
			}
		}
		obj = &dep
		key = dep.Key()
	default:
		return nil, &ParseError{
			Kind:    UnknownKind,
			Message: fmt.Sprintf("unsupported kind: %s", kind),
			Path:    source,
			Index:   docIndex,
		}
	}

	return &Document{
		Kind:       model.Kind(kind),
		Key:        key,
		APIVersion: apiVersion,
		Object:     obj,
		Path:       source,
		Index:      docIndex,
	}, nil
}

// mapToStruct converts a raw document map into a typed descriptor using YAML
// round-tripping, which preserves the JSON tags on descriptor types.
func mapToStruct(m map[string]any, target any) error {
	yamlBytes, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling to YAML: %w", err)
	}
	if err := yaml.Unmarshal(yamlBytes, target); err != nil {
		return fmt.Errorf("unmarshaling to struct: %w", err)
	}
	return nil
}
