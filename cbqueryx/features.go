package cbqueryx

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// CheckRequestFeatures fails with ErrFeatureNotAvailable when req uses an
// option that a cluster running serverVersion (e.g. "7.2.4-7070") cannot
// honour.  An empty or unparsable version skips the check.
func CheckRequestFeatures(req *QueryRequest, serverVersion string) error {
	version := "v" + serverVersion
	if serverVersion == "" || !semver.IsValid(version) {
		return nil
	}

	if req.UseReplica != QueryUseReplicaUnset && !versionAtLeast(version, "v7.6") {
		return fmt.Errorf("%w: use_replica requires server version 7.6 (cluster is %s)",
			ErrFeatureNotAvailable, serverVersion)
	}

	if req.PreserveExpiry && !versionAtLeast(version, "v7.1") {
		return fmt.Errorf("%w: preserve_expiry requires server version 7.1 (cluster is %s)",
			ErrFeatureNotAvailable, serverVersion)
	}

	return nil
}

// versionAtLeast compares major.minor only, so build suffixes such as
// "-2038" do not sort a release below its own minimum.
func versionAtLeast(version, minimum string) bool {
	return semver.Compare(semver.MajorMinor(version), minimum) >= 0
}
