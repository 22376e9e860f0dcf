package config

import (
	"sort"
	"strings"

	"github.com/teranos/bindgen/errors"
)

// knownTargets maps accepted target names to their canonical name
var knownTargets = map[string]string{
	"python": "python",
	"py":     "python",
	"go":     "go",
	"golang": "go",
}

// CanonicalTarget returns the canonical name for a target, accepting aliases
// such as "py" and "golang"
func CanonicalTarget(name string) (string, bool) {
	canonical, ok := knownTargets[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// TargetNames returns every accepted target name, sorted
func TargetNames() []string {
	names := make([]string, 0, len(knownTargets))
	for name := range knownTargets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, ok := CanonicalTarget(c.Target); !ok {
		return errors.WithHintf(
			errors.Newf("unknown target %q", c.Target),
			"supported targets: %s", strings.Join(TargetNames(), ", "),
		)
	}

	if c.Workers < 1 {
		return errors.Newf("workers must be >= 1, got %d", c.Workers)
	}

	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output cannot be empty (use - for stdout)")
	}

	for i, name := range c.Skip {
		if strings.TrimSpace(name) == "" {
			return errors.Newf("skip[%d] cannot be empty", i)
		}
	}

	return nil
}
