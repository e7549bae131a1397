// Package version pins the single version string stamped into both the
// admin CLI and the launcher binary.
package version

// Number is the released EnvHub version.
const Number = "0.4.0"
