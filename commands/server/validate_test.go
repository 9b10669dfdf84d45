package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireKey rejects any genesis without the given top level key and
// writes a marker, so we can see the store it was given.
type requireKey string

func (k requireKey) FromGenesis(opts swapd.Options, db swapd.KVStore) error {
	if _, ok := opts[string(k)]; !ok {
		return errors.Wrap(errors.ErrEmpty, string(k))
	}
	return db.Set([]byte(k), []byte("seen"))
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "swapd-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	good := write("good.json", `{"app_state": {"token": {}}}`)
	other := write("other.json", `{"app_state": {"escrow": {}}}`)
	empty := write("empty.json", `{"chain_id": "test-chain-Kr8WvA"}`)
	broken := write("broken.json", `{"app_state": `)

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"nothing to check": {},
		"valid": {
			paths: []string{good},
		},
		"one of many rejected": {
			paths:   []string{good, other},
			wantErr: errors.ErrEmpty,
		},
		"no app_state": {
			paths:   []string{empty},
			wantErr: errors.ErrEmpty,
		},
		"not json": {
			paths:   []string{broken},
			wantErr: errors.ErrInput,
		},
		"missing file": {
			paths:   []string{filepath.Join(dir, "missing.json")},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateGenesis(requireKey("token"), tc.paths)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
		})
	}
}
