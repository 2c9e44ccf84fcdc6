package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
)

// CheckHostCompatibility checks whether a host engine version can load this adapter.
// Returns nil if compatible, a coded error with details if not.
//
// Compatibility Rules:
//   - If the host version is "main" (development build), the check is skipped
//   - The host major version must equal the major version of minHost
//   - The host version must be at least minHost
//
// Examples (minHost 1.4.0):
//   - Host 1.4.0 -> OK
//   - Host 1.9.3 -> OK
//   - Host 1.3.9 -> ERROR (too old)
//   - Host 2.0.0 -> ERROR (major differs)
//   - Host main  -> OK (dev build, skip check)
func CheckHostCompatibility(hostVersion, minHost string) error {
	hostVersion = strings.TrimPrefix(strings.TrimSpace(hostVersion), "v")
	minHost = strings.TrimPrefix(strings.TrimSpace(minHost), "v")

	if hostVersion == "main" {
		return nil
	}

	hostSemver, err := semver.NewVersion(hostVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid host version '%s'", hostVersion)
	}

	minSemver, err := semver.NewVersion(minHost)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid minimum host version '%s'", minHost)
	}

	if hostSemver.Major() != minSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: host is %d.x.x but adapter requires %d.x.x",
			hostSemver.Major(), minSemver.Major())
	}

	constraint, err := semver.NewConstraint(fmt.Sprintf(">= %s", minSemver.String()))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, "failed to build version constraint", err)
	}

	// Constraints ignore prereleases unless asked; compare the core version only.
	core, _ := hostSemver.SetPrerelease("")
	if !constraint.Check(&core) {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"host version %s is older than the required %s", hostSemver.String(), minSemver.String())
	}

	return nil
}
