package programs

import "strings"

// MountPath joins basePath and routePath into one absolute pattern.
func MountPath(basePath, routePath string) string {
	basePath = strings.Trim(strings.TrimSpace(basePath), "/")
	routePath = strings.Trim(strings.TrimSpace(routePath), "/")

	switch {
	case basePath == "":
		return "/" + routePath
	case routePath == "":
		return "/" + basePath
	default:
		return "/" + basePath + "/" + routePath
	}
}
