// Package version provides build version information for tagbridge.
package version

// Version is the tagbridge version, set at build time via ldflags:
//
//	go build -ldflags "-X github.com/xdg/tagbridge/internal/version.Version=v1.0.0"
var Version = "dev"

// UserAgent is sent by the bridge client on every request.
func UserAgent() string {
	return "tagbridge/" + Version
}
