package chain

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item string

func (i item) Name() string {
	return string(i)
}

func newTestRegistry(t *testing.T, names ...string) (*Registry[item], []ID) {
	t.Helper()

	reg := NewRegistry[item]()
	ids := make([]ID, 0, len(names))

	for _, name := range names {
		id, err := reg.Add(item(name))
		require.NoError(t, err)

		ids = append(ids, id)
	}

	return reg, ids
}

func TestRegistryAdd(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
	assert.Equal(t, 3, reg.Len())

	for i, id := range ids {
		assert.Equal(t, i, reg.IndexOf(id))
	}
}

func TestRegistryAddDuplicate(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b")

	id, err := reg.Add(item("a"))
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, uuid.Nil, id)

	assert.Equal(t, []string{"a", "b"}, reg.Names())
	assert.Equal(t, 0, reg.IndexOf(ids[0]))
}

func TestRegistryInsert(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		index    int
		expected []string
		err      error
	}{
		"head":     {index: 0, expected: []string{"x", "a", "b"}},
		"middle":   {index: 1, expected: []string{"a", "x", "b"}},
		"tail":     {index: 2, expected: []string{"a", "b", "x"}},
		"negative": {index: -1, expected: []string{"a", "b"}, err: ErrIndexOutOfRange},
		"too far":  {index: 3, expected: []string{"a", "b"}, err: ErrIndexOutOfRange},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reg, _ := newTestRegistry(t, "a", "b")

			_, err := reg.Insert(tc.index, item("x"))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.False(t, reg.Has("x"))
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.expected, reg.Names())
		})
	}
}

func TestRegistryInsertDuplicate(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t, "a", "b")

	_, err := reg.Insert(0, item("b"))
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestRegistryRemove(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b", "c")

	assert.True(t, reg.Remove(ids[1]))
	assert.Equal(t, []string{"a", "c"}, reg.Names())
	assert.Equal(t, NotFound, reg.IndexOf(ids[1]))
	assert.Equal(t, 1, reg.IndexOf(ids[2]))
	assert.False(t, reg.Has("b"))

	assert.False(t, reg.Remove(ids[1]))
	assert.False(t, reg.Remove(uuid.New()))
	assert.Equal(t, []string{"a", "c"}, reg.Names())
}

func TestRegistryReaddGetsNewID(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a")
	require.True(t, reg.Remove(ids[0]))

	id, err := reg.Add(item("a"))
	require.NoError(t, err)
	assert.NotEqual(t, ids[0], id)
	assert.Equal(t, NotFound, reg.IndexOf(ids[0]))
	assert.Equal(t, 0, reg.IndexOf(id))
}

func TestRegistryMove(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		from, to int
		expected []string
	}{
		"to head":  {from: 2, to: 0, expected: []string{"c", "a", "b"}},
		"to tail":  {from: 0, to: 2, expected: []string{"b", "c", "a"}},
		"in place": {from: 1, to: 1, expected: []string{"a", "b", "c"}},
		"forward":  {from: 0, to: 1, expected: []string{"b", "a", "c"}},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reg, ids := newTestRegistry(t, "a", "b", "c")
			require.NoError(t, reg.Move(ids[tc.from], tc.to))
			assert.Equal(t, tc.expected, reg.Names())
			assert.Equal(t, tc.to, reg.IndexOf(ids[tc.from]))
		})
	}
}

func TestRegistryMoveErrors(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b")

	require.ErrorIs(t, reg.Move(ids[0], 2), ErrIndexOutOfRange)
	require.ErrorIs(t, reg.Move(ids[0], -1), ErrIndexOutOfRange)
	require.ErrorIs(t, reg.Move(uuid.New(), 0), ErrStepNotFound)
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestRegistryGet(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t, "a", "b")

	got, err := reg.Get(1)
	require.NoError(t, err)
	assert.Equal(t, item("b"), got)

	for _, index := range []int{-1, 2, 10} {
		_, err := reg.Get(index)
		require.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", index)
	}
}

func TestRegistryLookupAndFind(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b")

	got, id, ok := reg.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, item("b"), got)
	assert.Equal(t, ids[1], id)

	_, id, ok = reg.Lookup("z")
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)

	got, id, ok = reg.Find(func(i item) bool { return i == "a" })
	require.True(t, ok)
	assert.Equal(t, item("a"), got)
	assert.Equal(t, ids[0], id)

	_, _, ok = reg.Find(func(i item) bool { return false })
	assert.False(t, ok)
}

func TestRegistryPrevious(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b")

	_, index, ok := reg.previous(ids[0])
	assert.False(t, ok)
	assert.Equal(t, 0, index)

	prev, index, ok := reg.previous(ids[1])
	require.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Equal(t, item("a"), prev)

	_, index, ok = reg.previous(uuid.New())
	assert.False(t, ok)
	assert.Equal(t, NotFound, index)
}

func TestRegistryItemsIsSnapshot(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b")

	items := reg.Items()
	require.True(t, reg.Remove(ids[0]))

	assert.Equal(t, []item{"a", "b"}, items)
	assert.Equal(t, []item{"b"}, reg.Items())
}

func TestRegistryConcurrentReads(t *testing.T) {
	t.Parallel()

	reg, ids := newTestRegistry(t, "a", "b", "c")

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			id := ids[i%len(ids)]
			assert.Equal(t, i%len(ids), reg.IndexOf(id))
		}(i)
	}

	wg.Wait()
}
