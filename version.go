package swapd

import "fmt"

// ReleaseVersion is bumped on every release. Untagged builds keep the -dev suffix.
const ReleaseVersion = "v0.1.0-dev"

// GitCommit is injected at build time with
// -ldflags "-X github.com/iov-one/swapd.GitCommit=<sha>"
var GitCommit = ""

// Version is printed by `swapd version` and reported in ABCI Info.
func Version() string {
	if GitCommit == "" {
		return ReleaseVersion
	}
	return fmt.Sprintf("%s (%.8s)", ReleaseVersion, GitCommit)
}
