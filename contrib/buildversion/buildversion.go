package buildversion

import "runtime/debug"

// GetVersion returns the version modName was built at, as recorded in the
// binary's build info.  Binaries built from a source checkout report
// "(devel)", and binaries without build info report "unknown".
func GetVersion(modName string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Path == modName {
		return info.Main.Version
	}

	for _, dep := range info.Deps {
		if dep.Path == modName {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}

	return "unknown"
}
