package usecase

import (
	"errors"
	"path/filepath"
	"testing"
)

type fakeInitializer struct {
	root  string
	force bool
	err   error
}

func (f *fakeInitializer) Init(root string, force bool) (string, error) {
	f.root = root
	f.force = force
	if f.err != nil {
		return "", f.err
	}
	return filepath.Join(root, "edqm2fhir.yaml"), nil
}

func TestInitWorkspace_Execute(t *testing.T) {
	fi := &fakeInitializer{}
	path, err := NewInitWorkspace(fi).Execute("/tmp/ws", true)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if path != filepath.Join("/tmp/ws", "edqm2fhir.yaml") {
		t.Fatalf("path = %q", path)
	}
	if fi.root != "/tmp/ws" || !fi.force {
		t.Fatalf("initializer called with root=%q force=%v", fi.root, fi.force)
	}
}

func TestInitWorkspace_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	_, err := NewInitWorkspace(&fakeInitializer{err: want}).Execute(t.TempDir(), false)
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
