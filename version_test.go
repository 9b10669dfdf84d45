package swapd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	defer func(commit string) { GitCommit = commit }(GitCommit)

	cases := map[string]struct {
		commit string
		want   string
	}{
		"untagged build": {commit: "", want: "v0.1.0-dev"},
		"short commit":   {commit: "abc123", want: "v0.1.0-dev (abc123)"},
		"full sha":       {commit: "0f3a9c21d4e5b6a7c8d9e0f1", want: "v0.1.0-dev (0f3a9c21)"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			GitCommit = tc.commit
			assert.Equal(t, tc.want, Version())
		})
	}
}
