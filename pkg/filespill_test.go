package pkg

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type trial struct {
	Batch        int
	Instructions []string
	Crashed      bool
}

func newSpill[T any](t *testing.T) FileSpill[T] {
	t.Helper()

	spill, err := NewFileSpill[T](filepath.Join(t.TempDir(), "nested", "spill.gob"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = spill.Close() })

	return spill
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "spill.gob")

		spill, err := NewFileSpill[int](path)
		require.NoError(t, err)
		require.Equal(t, path, spill.Path())
		require.NoError(t, spill.Close())
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill := newSpill[string](t)

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val, err := spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val)

		val, err = spill.Get(3)
		require.Error(t, err)
		require.Empty(t, val)
	})

	t.Run("AppendBatch and Len", func(t *testing.T) {
		spill := newSpill[int](t)
		require.Equal(t, uint64(0), spill.Len())

		require.NoError(t, spill.AppendBatch([]int{10, 20, 30}))
		require.Equal(t, uint64(3), spill.Len())

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 10, val)
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		spill := newSpill[int](t)
		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		var seen []int
		err := spill.Range(func(index uint64, item int) error {
			seen = append(seen, item)
			if index == 1 {
				return errors.New("stop")
			}

			return nil
		})

		require.Error(t, err)
		require.Equal(t, []int{1, 2}, seen)
	})

	t.Run("structs survive a round trip", func(t *testing.T) {
		spill := newSpill[trial](t)

		want := trial{Batch: 2, Instructions: []string{"#4 delete-statement"}, Crashed: true}
		require.NoError(t, spill.Append(trial{Batch: 1}))
		require.NoError(t, spill.Append(want))

		got, err := spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("items stay readable after Close", func(t *testing.T) {
		spill := newSpill[int](t)
		require.NoError(t, spill.Append(7))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 7, val)

		require.ErrorIs(t, spill.Append(8), ErrReadOnly)
	})
}

func TestOpenFileSpill(t *testing.T) {
	t.Run("counts existing items", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trials.gob")

		spill, err := NewFileSpill[trial](path)
		require.NoError(t, err)
		require.NoError(t, spill.AppendBatch([]trial{{Batch: 0}, {Batch: 1}, {Batch: 2}}))
		require.NoError(t, spill.Close())

		opened, err := OpenFileSpill[trial](path)
		require.NoError(t, err)
		require.Equal(t, uint64(3), opened.Len())

		var batches []int
		require.NoError(t, opened.Range(func(_ uint64, item trial) error {
			batches = append(batches, item.Batch)
			return nil
		}))
		require.Equal(t, []int{0, 1, 2}, batches)

		require.ErrorIs(t, opened.Append(trial{}), ErrReadOnly)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.gob")

		spill, err := NewFileSpill[int](path)
		require.NoError(t, err)
		require.NoError(t, spill.Close())

		opened, err := OpenFileSpill[int](path)
		require.NoError(t, err)
		require.Equal(t, uint64(0), opened.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenFileSpill[int](filepath.Join(t.TempDir(), "missing.gob"))
		require.Error(t, err)
	})
}

func BenchmarkAppend(b *testing.B) {
	spill, err := NewFileSpill[trial](filepath.Join(b.TempDir(), "bench.gob"))
	require.NoError(b, err)

	defer spill.Close()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Append(trial{Batch: i})
	}
}
