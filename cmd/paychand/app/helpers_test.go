package app

import (
	"io/ioutil"
	"os"
	"testing"
)

func tempDir(t testing.TB) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "paychand")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}
