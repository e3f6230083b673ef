package cas

import (
	"errors"
	"os"
	"testing"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	content := `Calls <a href="App/Foo.html#method_bar">Foo::bar</a>`
	hash, err := s.Write(content)
	if err != nil {
		t.Fatal(err)
	}
	if hash != Hash(content) {
		t.Fatalf("hash = %s, want %s", hash, Hash(content))
	}

	got, err := s.Read(hash)
	if err != nil {
		t.Fatal(err)
	}
	if got != content {
		t.Errorf("round-trip failed: got %q, want %q", got, content)
	}
}

func TestWrite_Dedup(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	hash1, err := s.Write("duplicate content")
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := s.Write("duplicate content")
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != hash2 {
		t.Errorf("same content produced different hashes: %s vs %s", hash1, hash2)
	}
}

func TestWrite_DifferentContent(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	hash1, err := s.Write("content A")
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := s.Write("content B")
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash2 {
		t.Error("different content should produce different hashes")
	}
}

func TestRead_MissingHash(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	_, err := s.Read("0000000000000000000000000000000000000000000000000000000000000000")
	if err == nil {
		t.Fatal("expected error for missing hash")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}

	if _, err := s.Read("ab"); err == nil {
		t.Error("expected error for short hash")
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	if Key("ab", "c") == Key("a", "bc") {
		t.Error("length prefixing should separate parts")
	}
	if Key(`App\Foo`, "desc") != Key(`App\Foo`, "desc") {
		t.Error("key should be stable")
	}
	if len(Key()) != 64 {
		t.Errorf("expected hex sha256, got %q", Key())
	}
}
