// Package version provides centralized version information for Tokenboard projects.
// This package supports independent versioning for the boardd development daemon
// and the boardctl CLI as separate projects within the monorepo, allowing them to
// evolve independently while maintaining consistency within each project's
// components. All versions follow semantic versioning (semver) conventions.

package version

// BoarddVersion holds the current boardd development daemon version.
// Format: major.minor.patch[-prerelease][+build]
const BoarddVersion = "0.1.0-dev"

// BoardctlVersion holds the current boardctl CLI version.
// This is used by the CLI binary and allows independent evolution
// of the dashboard tool separate from the backing API daemon.
// Format: major.minor.patch[-prerelease][+build]
const BoardctlVersion = "0.1.0-dev"
