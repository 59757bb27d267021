package naming

import (
	"strings"
	"testing"
)

func TestValidatePlatformName(t *testing.T) {
	valid := []string{"pg1", "analytics-db", "a", strings.Repeat("a", 128)}
	for _, name := range valid {
		if err := ValidatePlatformName(name); err != nil {
			t.Errorf("expected %q valid: %v", name, err)
		}
	}
	invalid := []string{"", "Upper", "has_underscore", "-leading", "trailing-", "dots.not.allowed", strings.Repeat("a", 129)}
	for _, name := range invalid {
		if err := ValidatePlatformName(name); err == nil {
			t.Errorf("expected %q invalid", name)
		}
	}
}

func TestValidateProjectName(t *testing.T) {
	if err := ValidateProjectName("proj-a"); err != nil {
		t.Fatalf("expected valid: %v", err)
	}
	for _, name := range []string{"", "Bad", strings.Repeat("a", 64)} {
		if err := ValidateProjectName(name); err == nil {
			t.Errorf("expected %q invalid", name)
		}
	}
}
