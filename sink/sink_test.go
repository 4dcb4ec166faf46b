package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.txt")
	if err := (File{Path: name}).Accept("a\nb"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\nb\n" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestFileError(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", "out.txt")
	if err := (File{Path: name}).Accept("x"); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected not exist error, got", err)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := Writer{W: &buf}
	if err := w.Accept(""); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatal("empty text produced output")
	}
	if err := w.Accept("x"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "x\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	var got []string
	m := Multi{
		Func(func(s string) error { got = append(got, "a:"+s); return nil }),
		Func(func(string) error { return boom }),
		Func(func(s string) error { got = append(got, "c:"+s); return nil }),
	}
	err := m.Accept("x")
	if !errors.Is(err, boom) {
		t.Fatal("expected boom, got", err)
	}
	if len(got) != 2 || got[0] != "a:x" || got[1] != "c:x" {
		t.Fatal("not every sink ran:", got)
	}
}
