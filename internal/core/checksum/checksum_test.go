package checksum

import (
	"context"
	"strings"
	"testing"

	"github.com/quiverfm/quiver/internal/testutil"
)

func TestCalculate_KnownDigests(t *testing.T) {
	calc := NewDefaultCalculator()
	ctx := context.Background()

	// Digests of the ASCII string "hello"
	cases := []struct {
		algo Algorithm
		want string
	}{
		{MD5, "5d41402abc4b2a76b9719d911017c592"},
		{SHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}

	for _, c := range cases {
		got, err := calc.Calculate(ctx, strings.NewReader("hello"), c.algo)
		if err != nil {
			t.Fatalf("%s: calculate failed: %v", c.algo, err)
		}
		if got != c.want {
			t.Errorf("%s: got %s, want %s", c.algo, got, c.want)
		}
	}
}

func TestCalculate_UnsupportedAlgorithm(t *testing.T) {
	calc := NewDefaultCalculator()

	if _, err := calc.Calculate(context.Background(), strings.NewReader("x"), Algorithm("crc32")); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
	if IsSupported("crc32") {
		t.Error("crc32 must not be supported")
	}
	if !IsSupported(MD5) || !IsSupported(SHA256) {
		t.Error("md5 and sha256 must be supported")
	}
}

func TestCalculate_CancelledContext(t *testing.T) {
	calc := NewDefaultCalculator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := calc.Calculate(ctx, strings.NewReader("hello"), SHA256); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestCalculateFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	path := testutil.CreateTestFile(t, dir, "data.txt", []byte("hello"))

	calc := NewDefaultCalculator()
	got, err := calc.CalculateFile(context.Background(), path, MD5)
	if err != nil {
		t.Fatalf("calculate file failed: %v", err)
	}
	if got != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("unexpected digest %s", got)
	}

	if _, err := calc.CalculateFile(context.Background(), dir+"/missing", MD5); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVerifyFiles(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	a := testutil.CreateTestFile(t, dir, "a.txt", []byte("same content"))
	b := testutil.CreateTestFile(t, dir, "b.txt", []byte("same content"))
	c := testutil.CreateTestFile(t, dir, "c.txt", []byte("other content"))

	calc := NewCalculator(Options{BufferSize: 4})
	ctx := context.Background()

	match, err := calc.VerifyFiles(ctx, a, b, SHA256)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !match {
		t.Error("identical files must match")
	}

	match, err = calc.VerifyFiles(ctx, a, c, SHA256)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if match {
		t.Error("different files must not match")
	}
}
