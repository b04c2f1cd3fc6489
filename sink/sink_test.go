package sink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "simple", path: "pets.yaml"},
		{name: "nested", path: "a/b/pets.json"},
		{name: "dots in name", path: "a/pets..yaml"},
		{name: "empty", path: "", wantErr: "empty"},
		{name: "absolute", path: "/etc/passwd", wantErr: "absolute paths not allowed"},
		{name: "windows drive", path: "C:/x", wantErr: "absolute paths not allowed"},
		{name: "traversal", path: "a/../b", wantErr: "path traversal not allowed"},
		{name: "leading traversal", path: "../b", wantErr: "path traversal not allowed"},
		{name: "dot prefix", path: "./a", wantErr: "not clean"},
		{name: "double slash", path: "a//b", wantErr: "not clean"},
		{name: "trailing slash", path: "a/b/", wantErr: "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDirWriteFile(t *testing.T) {
	root := t.TempDir()
	s := NewDir(root)
	ctx := context.Background()

	require.NoError(t, s.WriteFile(ctx, "out/pets.yaml", []byte("one")))
	got, err := os.ReadFile(filepath.Join(root, "out", "pets.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	require.NoError(t, s.WriteFile(ctx, "out/pets.yaml", []byte("two")))
	got, err = os.ReadFile(filepath.Join(root, "out", "pets.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	info, err := os.Stat(filepath.Join(root, "out", "pets.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestDirNoOverwrite(t *testing.T) {
	root := t.TempDir()
	s := &Dir{Root: root}
	ctx := context.Background()

	require.NoError(t, s.WriteFile(ctx, "a.json", []byte("first")))
	err := s.WriteFile(ctx, "a.json", []byte("second"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	got, err := os.ReadFile(filepath.Join(root, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func TestDirRejects(t *testing.T) {
	s := NewDir(t.TempDir())
	assert.Error(t, s.WriteFile(context.Background(), "../x", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.WriteFile(ctx, "x", nil), context.Canceled)
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	content := []byte("abc")
	require.NoError(t, s.WriteFile(ctx, "b.yaml", content))
	require.NoError(t, s.WriteFile(ctx, "a.yaml", []byte("x")))
	content[0] = 'z'

	assert.Equal(t, "abc", string(s.Get("b.yaml")), "content is copied on write")
	assert.Nil(t, s.Get("missing"))
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, s.Paths())

	s.Reset()
	assert.Empty(t, s.Paths())
	assert.Error(t, s.WriteFile(ctx, "", nil))
}

func TestMemoryConcurrent(t *testing.T) {
	s := NewMemory()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WriteFile(context.Background(), fmt.Sprintf("f%d", i), []byte("x"))
		}()
	}
	wg.Wait()
	assert.Len(t, s.Paths(), 20)
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf)
	require.NoError(t, s.WriteFile(context.Background(), "pets.yaml", []byte("name: pets\n")))
	assert.Equal(t, "# pets.yaml\nname: pets\n", buf.String())
}
