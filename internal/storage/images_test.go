package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFileAndReturnsResolvableRef(t *testing.T) {
	store, err := NewDiskImageStore(t.TempDir(), "/images")
	if err != nil {
		t.Fatalf("Failed to create image store: %v", err)
	}

	content := []byte("fake png bytes")
	ref, url, err := store.Save("Engine-Oil.PNG", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasSuffix(ref, ".png") {
		t.Errorf("Expected lowercased extension on ref, got %q", ref)
	}

	if url != "/images/"+ref {
		t.Errorf("Expected URL /images/%s, got %q", ref, url)
	}

	stored, err := os.ReadFile(filepath.Join(store.Dir(), ref))
	if err != nil {
		t.Fatalf("Stored file not readable: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("Stored file content does not match upload")
	}
}

func TestSaveGeneratesUniqueRefsForSameFilename(t *testing.T) {
	store, err := NewDiskImageStore(t.TempDir(), "/images")
	if err != nil {
		t.Fatalf("Failed to create image store: %v", err)
	}

	ref1, _, err := store.Save("oil.jpg", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	ref2, _, err := store.Save("oil.jpg", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if ref1 == ref2 {
		t.Error("Expected distinct refs for repeated uploads of the same filename")
	}
}

func TestResolveURLFallsBackToPlaceholder(t *testing.T) {
	store, err := NewDiskImageStore(t.TempDir(), "/images/")
	if err != nil {
		t.Fatalf("Failed to create image store: %v", err)
	}

	if got := store.ResolveURL(""); got != PlaceholderImagePath {
		t.Errorf("Expected placeholder %q, got %q", PlaceholderImagePath, got)
	}

	if got := store.ResolveURL("abc.png"); got != "/images/abc.png" {
		t.Errorf("Expected /images/abc.png, got %q", got)
	}
}
