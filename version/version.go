package version

import (
	"fmt"
	"runtime"
)

// Version is the SDK release version, overridable at build time with
// -ldflags "-X github.com/oway-inc/oway-go/version.Version=x.y.z".
var Version = "0.1.0"

// UserAgent returns the User-Agent header value, e.g.
// "oway-go/0.1.0 (go1.26.0; linux/amd64)".
func UserAgent() string {
	return fmt.Sprintf("oway-go/%s (%s; %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
