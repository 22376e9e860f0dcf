package model

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/bindgen/errors"
)

// SupportedSchema is the model schema range this generator reads.
const SupportedSchema = ">= 1.0.0, < 2.0.0"

// CheckSchemaVersion verifies a model's schema_version against
// SupportedSchema. Models without a version are accepted as 1.x.
func CheckSchemaVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.NewInvalidModelf("invalid schema_version %q: %v", version, err)
	}

	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return errors.Wrap(err, "invalid supported schema constraint")
	}

	if !constraint.Check(v) {
		return errors.WithHintf(
			errors.NewInvalidModelf("model schema %s is not supported", version),
			"this generator reads schema versions %s", SupportedSchema)
	}
	return nil
}
