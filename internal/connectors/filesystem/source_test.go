package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

func TestSource_Validate(t *testing.T) {
	t.Run("accepts an existing directory", func(t *testing.T) {
		source := New(t.TempDir())
		assert.NoError(t, source.Validate())
	})

	t.Run("rejects a missing path", func(t *testing.T) {
		source := New(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, source.Validate())
	})

	t.Run("rejects a file path", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "f.pdf")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		assert.Error(t, New(file).Validate())
	})
}

func TestSource_List(t *testing.T) {
	t.Run("returns regular files and skips subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.docx"), []byte("b"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

		paths, err := New(dir).List(context.Background())

		require.NoError(t, err)
		assert.Len(t, paths, 2)
	})

	t.Run("fails for an unreadable directory", func(t *testing.T) {
		source := New(filepath.Join(t.TempDir(), "missing"))

		_, err := source.List(context.Background())

		assert.Error(t, err)
	})
}

func TestSource_Watch(t *testing.T) {
	t.Run("reports a created file", func(t *testing.T) {
		dir := t.TempDir()
		source := New(dir)
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, _, err := source.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdf"), []byte("x"), 0o644))

		select {
		case ev := <-events:
			assert.Equal(t, driven.FileCreated, ev.Type)
			assert.Equal(t, "new.pdf", ev.Name)
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for create event")
		}
	})

	t.Run("reports a removed file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "old.docx")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		source := New(dir)
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, _, err := source.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		deadline := time.After(3 * time.Second)
		for {
			select {
			case ev := <-events:
				if ev.Type == driven.FileRemoved {
					assert.Equal(t, "old.docx", ev.Name)
					return
				}
			case <-deadline:
				t.Fatal("timed out waiting for remove event")
			}
		}
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		source := New(t.TempDir())
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())
		events, _, err := source.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, open := <-events:
			assert.False(t, open)
		case <-time.After(3 * time.Second):
			t.Fatal("event channel not closed after cancel")
		}
	})
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		op       fsnotify.Op
		want     driven.FileEventType
		relevant bool
	}{
		{name: "create", op: fsnotify.Create, want: driven.FileCreated, relevant: true},
		{name: "rename", op: fsnotify.Rename, want: driven.FileCreated, relevant: true},
		{name: "remove", op: fsnotify.Remove, want: driven.FileRemoved, relevant: true},
		{name: "write ignored", op: fsnotify.Write, relevant: false},
		{name: "chmod ignored", op: fsnotify.Chmod, relevant: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe, relevant := translate(fsnotify.Event{Name: "/docs/x.pdf", Op: tt.op})

			assert.Equal(t, tt.relevant, relevant)
			if relevant {
				assert.Equal(t, tt.want, fe.Type)
				assert.Equal(t, "x.pdf", fe.Name)
			}
		})
	}
}
