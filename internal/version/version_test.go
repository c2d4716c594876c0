package version

import "testing"

func TestString(t *testing.T) {
	oldTag, oldRev, oldAt, oldDirty := Tag, Revision, BuildAt, Dirty
	t.Cleanup(func() { Tag, Revision, BuildAt, Dirty = oldTag, oldRev, oldAt, oldDirty })

	Revision = ""
	if got := String(); got != "dev" {
		t.Fatalf("String() = %q, want dev", got)
	}

	Tag, Revision, BuildAt, Dirty = "v1.2.0", "0123456789abcdef", "2026-10-01T08:30:00Z", true
	if got, want := String(), "v1.2.0 0123456 at 2026-10-01 08:30:00 dirty"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
