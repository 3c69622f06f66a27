package version

import "testing"

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Fatal("version should not be empty")
	}
	t.Logf("version: %v, build version: %q", Version, ReadBuildVersion())
}
