package manifest

import (
	"fmt"

	"github.com/slipway-dev/slipway/domain/model"
	"github.com/slipway-dev/slipway/internal/naming"
)

// supportedVersions lists the accepted apiVersion values per kind.
// Deployments keep their legacy API groups loadable; the kube adapter
// normalizes them to apps/v1 on conversion.
var supportedVersions = map[model.Kind][]string{
	model.KindService:    {"v1"},
	model.KindDeployment: {"apps/v1", "apps/v1beta1", "apps/v1beta2", "extensions/v1beta1"},
}

// ValidationResult contains the results of validating a document set.
type ValidationResult struct {
	// Errors are validation errors encountered, in document order.
	Errors []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns the first validation error, or nil when the set is valid.
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

func (r *ValidationResult) add(doc *Document, kind ValidationErrorKind, field, message string) {
	r.Errors = append(r.Errors, &ValidationError{
		Kind:    kind,
		Key:     doc.Key,
		Field:   field,
		Message: message,
		Path:    doc.Path,
		Index:   doc.Index,
	})
}

// Validate checks a parsed set against schema and cross-reference
// constraints. It checks:
//  1. Required fields (metadata, service selector, containers)
//  2. Field formats (DNS-1123 names, port ranges, protocols)
//  3. Supported apiVersion values per kind
//  4. Duplicate (kind, namespace, name) keys within the set
//  5. Deployment selector consistency with pod template labels
//  6. Cross-references: volume mounts against declared volumes, service
//     target ports against container ports of the selected deployments
//
// All violations are collected; the set validates only when the result has
// no errors. The set itself is never modified.
func Validate(set *Set) *ValidationResult {
	result := &ValidationResult{Errors: make([]*ValidationError, 0)}
	if set == nil {
		return result
	}

	// Track keys seen in this set to detect duplicates. Documents with
	// incomplete identity are excluded; they already fail the field checks.
	seenKeys := make(map[model.Key]int)

	for i := range set.docs {
		doc := &set.docs[i]
		validateVersion(doc, result)
		validateMeta(doc, result)

		if doc.Key.Name != "" && doc.Key.Namespace != "" {
			if prev, exists := seenKeys[doc.Key]; exists {
				result.add(doc, Duplicate, "metadata.name",
					fmt.Sprintf("duplicate object, already defined at document %d", set.docs[prev].Index))
			} else {
				seenKeys[doc.Key] = i
			}
		}

		switch doc.Kind {
		case model.KindService:
			if svc, ok := doc.Service(); ok {
				validateService(doc, svc, result)
			}
		case model.KindDeployment:
			if dep, ok := doc.Deployment(); ok {
				validateDeployment(doc, dep, result)
			}
		}
	}

	// Cross-reference service ports once every document has been checked on
	// its own. Ports of invalid deployments still count as declared so one
	// broken field does not cascade into reference errors.
	for i := range set.docs {
		doc := &set.docs[i]
		if svc, ok := doc.Service(); ok {
			validateServiceReferences(set, doc, svc, result)
		}
	}

	return result
}

// validateVersion checks the declared apiVersion against the supported set
// for the document kind.
func validateVersion(doc *Document, result *ValidationResult) {
	for _, v := range supportedVersions[doc.Kind] {
		if doc.APIVersion == v {
			return
		}
	}
	result.add(doc, UnsupportedVersion, "apiVersion",
		fmt.Sprintf("unsupported apiVersion %q for kind %s", doc.APIVersion, doc.Kind))
}

// validateMeta checks object identity fields shared by all kinds.
func validateMeta(doc *Document, result *ValidationResult) {
	if doc.Key.Name == "" {
		result.add(doc, MissingField, "metadata.name", `missing required field "metadata.name"`)
	} else if err := naming.ValidateObjectName(doc.Key.Name); err != nil {
		result.add(doc, InvalidValue, "metadata.name",
			fmt.Sprintf("metadata.name %q: %v", doc.Key.Name, err))
	}
	if doc.Key.Namespace == "" {
		result.add(doc, MissingField, "metadata.namespace", `missing required field "metadata.namespace"`)
	} else if err := naming.ValidateNamespace(doc.Key.Namespace); err != nil {
		result.add(doc, InvalidValue, "metadata.namespace",
			fmt.Sprintf("metadata.namespace %q: %v", doc.Key.Namespace, err))
	}
}

// validateService checks service-specific constraints.
func validateService(doc *Document, svc *model.ServiceDescriptor, result *ValidationResult) {
	switch svc.Spec.Type {
	case "", model.ServiceTypeClusterIP, model.ServiceTypeNodePort:
	default:
		result.add(doc, InvalidValue, "spec.type",
			fmt.Sprintf("unsupported service type %q", svc.Spec.Type))
	}

	if len(svc.Spec.Selector) == 0 {
		result.add(doc, MissingField, "spec.selector", `missing required field "spec.selector"`)
	}
	if len(svc.Spec.Ports) == 0 {
		result.add(doc, MissingField, "spec.ports", `missing required field "spec.ports"`)
	}

	seenNames := make(map[string]bool)
	for i, p := range svc.Spec.Ports {
		field := fmt.Sprintf("spec.ports[%d]", i)
		if p.Name != "" {
			if seenNames[p.Name] {
				result.add(doc, Duplicate, field+".name",
					fmt.Sprintf("duplicate port name %q", p.Name))
			}
			seenNames[p.Name] = true
		}
		if err := naming.ValidatePortName(p.Name); err != nil {
			result.add(doc, InvalidValue, field+".name", err.Error())
		}
		if p.Port == 0 {
			result.add(doc, MissingField, field+".port",
				fmt.Sprintf("missing required field %q", field+".port"))
		} else if !portInRange(p.Port) {
			result.add(doc, InvalidValue, field+".port",
				fmt.Sprintf("port %d out of range 1-65535", p.Port))
		}
		if p.TargetPort != 0 && !portInRange(p.TargetPort) {
			result.add(doc, InvalidValue, field+".targetPort",
				fmt.Sprintf("targetPort %d out of range 1-65535", p.TargetPort))
		}
		if p.NodePort != 0 && !portInRange(p.NodePort) {
			result.add(doc, InvalidValue, field+".nodePort",
				fmt.Sprintf("nodePort %d out of range 1-65535", p.NodePort))
		}
		if !validProtocol(p.Protocol) {
			result.add(doc, InvalidValue, field+".protocol",
				fmt.Sprintf("unsupported protocol %q", p.Protocol))
		}
	}
}

// validateDeployment checks deployment-specific constraints, including the
// volume mount references inside its own pod template.
func validateDeployment(doc *Document, dep *model.DeploymentDescriptor, result *ValidationResult) {
	if dep.Spec.Replicas != nil && *dep.Spec.Replicas < 0 {
		result.add(doc, InvalidValue, "spec.replicas",
			fmt.Sprintf("replicas must not be negative, got %d", *dep.Spec.Replicas))
	}

	// apps/v1 made the selector mandatory; legacy versions default it to the
	// pod template labels.
	selectorEmpty := dep.Spec.Selector == nil || len(dep.Spec.Selector.MatchLabels) == 0
	if dep.APIVersion == "apps/v1" && selectorEmpty {
		result.add(doc, MissingField, "spec.selector", `missing required field "spec.selector"`)
	}
	templateLabels := dep.Spec.Template.Metadata.Labels
	if selectorEmpty && len(templateLabels) == 0 {
		result.add(doc, MissingField, "spec.template.metadata.labels",
			`missing required field "spec.template.metadata.labels"`)
	}
	if !selectorEmpty && !selectorMatches(dep.Spec.Selector.MatchLabels, templateLabels) {
		result.add(doc, SelectorMismatch, "spec.selector",
			fmt.Sprintf("selector %v does not match pod template labels %v",
				dep.Spec.Selector.MatchLabels, templateLabels))
	}

	if dep.Spec.Template.Spec.TerminationGracePeriodSeconds != nil &&
		*dep.Spec.Template.Spec.TerminationGracePeriodSeconds < 0 {
		result.add(doc, InvalidValue, "spec.template.spec.terminationGracePeriodSeconds",
			"termination grace period must not be negative")
	}

	volumes := make(map[string]bool)
	for i, v := range dep.Spec.Template.Spec.Volumes {
		field := fmt.Sprintf("spec.template.spec.volumes[%d]", i)
		if v.Name == "" {
			result.add(doc, MissingField, field+".name",
				fmt.Sprintf("missing required field %q", field+".name"))
			continue
		}
		if err := naming.ValidateVolumeName(v.Name); err != nil {
			result.add(doc, InvalidValue, field+".name", err.Error())
		}
		if volumes[v.Name] {
			result.add(doc, Duplicate, field+".name",
				fmt.Sprintf("duplicate volume name %q", v.Name))
		}
		volumes[v.Name] = true
		if v.HostPath != nil && v.EmptyDir != nil {
			result.add(doc, InvalidValue, field,
				fmt.Sprintf("volume %q may specify only one source", v.Name))
		}
		if v.HostPath != nil && v.HostPath.Path == "" {
			result.add(doc, MissingField, field+".hostPath.path",
				fmt.Sprintf("missing required field %q", field+".hostPath.path"))
		}
	}

	if len(dep.Spec.Template.Spec.Containers) == 0 {
		result.add(doc, MissingField, "spec.template.spec.containers",
			`missing required field "spec.template.spec.containers"`)
	}
	seenContainers := make(map[string]bool)
	for i, c := range dep.Spec.Template.Spec.Containers {
		field := fmt.Sprintf("spec.template.spec.containers[%d]", i)
		if c.Name == "" {
			result.add(doc, MissingField, field+".name",
				fmt.Sprintf("missing required field %q", field+".name"))
		} else {
			if err := naming.ValidateContainerName(c.Name); err != nil {
				result.add(doc, InvalidValue, field+".name", err.Error())
			}
			if seenContainers[c.Name] {
				result.add(doc, Duplicate, field+".name",
					fmt.Sprintf("duplicate container name %q", c.Name))
			}
			seenContainers[c.Name] = true
		}
		if c.Image == "" {
			result.add(doc, MissingField, field+".image",
				fmt.Sprintf("missing required field %q", field+".image"))
		}
		switch c.ImagePullPolicy {
		case "", "Always", "IfNotPresent", "Never":
		default:
			result.add(doc, InvalidValue, field+".imagePullPolicy",
				fmt.Sprintf("unsupported image pull policy %q", c.ImagePullPolicy))
		}
		for j, p := range c.Ports {
			portField := fmt.Sprintf("%s.ports[%d]", field, j)
			if p.ContainerPort == 0 {
				result.add(doc, MissingField, portField+".containerPort",
					fmt.Sprintf("missing required field %q", portField+".containerPort"))
			} else if !portInRange(p.ContainerPort) {
				result.add(doc, InvalidValue, portField+".containerPort",
					fmt.Sprintf("containerPort %d out of range 1-65535", p.ContainerPort))
			}
			if err := naming.ValidatePortName(p.Name); err != nil {
				result.add(doc, InvalidValue, portField+".name", err.Error())
			}
			if !validProtocol(p.Protocol) {
				result.add(doc, InvalidValue, portField+".protocol",
					fmt.Sprintf("unsupported protocol %q", p.Protocol))
			}
		}
		for j, m := range c.VolumeMounts {
			mountField := fmt.Sprintf("%s.volumeMounts[%d]", field, j)
			if m.Name == "" {
				result.add(doc, MissingField, mountField+".name",
					fmt.Sprintf("missing required field %q", mountField+".name"))
				continue
			}
			if m.MountPath == "" {
				result.add(doc, MissingField, mountField+".mountPath",
					fmt.Sprintf("missing required field %q", mountField+".mountPath"))
			}
			if !volumes[m.Name] {
				result.add(doc, DanglingReference, mountField+".name",
					fmt.Sprintf("volume mount %q resolves to no declared volume", m.Name))
			}
		}
	}
}

// validateServiceReferences checks that every service target port resolves
// to a container port declared by a deployment the service selects.
func validateServiceReferences(set *Set, doc *Document, svc *model.ServiceDescriptor, result *ValidationResult) {
	if len(svc.Spec.Selector) == 0 {
		return // already reported as a missing field
	}

	declared := make(map[int32]bool)
	matched := false
	for _, dep := range set.Deployments() {
		if dep.Metadata.Namespace != svc.Metadata.Namespace {
			continue
		}
		if !selectorMatches(svc.Spec.Selector, dep.Spec.Template.Metadata.Labels) {
			continue
		}
		matched = true
		for _, c := range dep.Spec.Template.Spec.Containers {
			for _, p := range c.Ports {
				declared[p.ContainerPort] = true
			}
		}
	}

	for i, p := range svc.Spec.Ports {
		target := p.EffectiveTargetPort()
		if target == 0 {
			continue // missing port, already reported
		}
		if !declared[target] {
			msg := fmt.Sprintf("targetPort %d matches no containerPort declared by deployments selected by %v", target, svc.Spec.Selector)
			if !matched {
				msg = fmt.Sprintf("targetPort %d: no deployment matches selector %v", target, svc.Spec.Selector)
			}
			result.add(doc, DanglingReference, fmt.Sprintf("spec.ports[%d].targetPort", i), msg)
		}
	}
}

// selectorMatches reports whether every selector label is present in labels.
func selectorMatches(selector, labels map[string]string) bool {
	if len(selector) == 0 {
		return false
	}
	for k, v := range selector {
		if labels[k] != v {
			return false
		}
	}
	return true
}

func validProtocol(p model.Protocol) bool {
	switch p {
	case "", model.ProtocolTCP, model.ProtocolUDP:
		return true
	}
	return false
}

func portInRange(p int32) bool {
	return p >= 1 && p <= 65535
}
