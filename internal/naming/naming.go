// Package naming validates user-supplied resource names against the
// constraints imposed by the persistent store and Kubernetes.
package naming

import (
	"fmt"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const (
	platformNameMaxLength = 128
	projectNameMaxLength  = 63 // becomes a Kubernetes namespace name
)

// ValidatePlatformName checks the lowercase-kebab platform name. Platform
// names become Kubernetes object names, so each dash-separated run must be
// a valid DNS-1123 label sequence.
func ValidatePlatformName(name string) error {
	if name == "" {
		return fmt.Errorf("platform name must not be empty")
	}
	if len(name) > platformNameMaxLength {
		return fmt.Errorf("platform name exceeds %d characters", platformNameMaxLength)
	}
	if errs := utilvalidation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return fmt.Errorf("invalid platform name: %s", strings.Join(errs, ", "))
	}
	if strings.Contains(name, ".") {
		return fmt.Errorf("invalid platform name: dots are not allowed")
	}
	return nil
}

// ValidateProjectName checks a project name, which doubles as the target
// namespace of the project's platforms.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if len(name) > projectNameMaxLength {
		return fmt.Errorf("project name exceeds %d characters", projectNameMaxLength)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid project name: %s", strings.Join(errs, ", "))
	}
	return nil
}
