package naming

import (
	"fmt"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const (
	objectNameMaxLength = 63
	portNameMaxLength   = 15
)

func validateDNS1123Label(name string, maximum int, labelKind string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", labelKind)
	}
	if len(name) > maximum {
		return fmt.Errorf("%s name exceeds %d characters", labelKind, maximum)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid %s name: %s", labelKind, strings.Join(errs, ", "))
	}
	return nil
}

// ValidateObjectName checks a descriptor metadata.name.
func ValidateObjectName(name string) error {
	return validateDNS1123Label(name, objectNameMaxLength, "object")
}

// ValidateNamespace checks a descriptor metadata.namespace.
func ValidateNamespace(name string) error {
	return validateDNS1123Label(name, objectNameMaxLength, "namespace")
}

// ValidateContainerName checks a container name within a pod template.
func ValidateContainerName(name string) error {
	return validateDNS1123Label(name, objectNameMaxLength, "container")
}

// ValidateVolumeName checks a pod template volume name.
func ValidateVolumeName(name string) error {
	return validateDNS1123Label(name, objectNameMaxLength, "volume")
}

// ValidatePortName checks an optional named port (IANA service name rules).
// Empty names are allowed; ports may be purely numeric.
func ValidatePortName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > portNameMaxLength {
		return fmt.Errorf("port name exceeds %d characters", portNameMaxLength)
	}
	if errs := utilvalidation.IsValidPortName(name); len(errs) > 0 {
		return fmt.Errorf("invalid port name: %s", strings.Join(errs, ", "))
	}
	return nil
}
