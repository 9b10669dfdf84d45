package swaptest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db swapd.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "swaptest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	commit, err := iavl.NewCommitStore(dbpath, "db", 0)
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open commit store: %s", err)
	}
	return commit, func() {
		commit.Close()
		os.RemoveAll(dbpath)
	}
}
