package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"tasker/internal/store"
)

func newTestStore(descriptions ...string) *store.Store {
	s := store.New()
	for _, d := range descriptions {
		if _, err := s.Add(d); err != nil {
			panic(err)
		}
	}
	return s
}

func mustAdd(t *testing.T, s *store.Store, description string) uint32 {
	t.Helper()
	id, err := s.Add(description)
	require.NoError(t, err)
	return id
}

func TestNew(t *testing.T) {
	t.Parallel()
	s := store.New()

	assert.Equal(t, s.Len(), 0)
	assert.Equal(t, s.NextID, uint32(1))
	require.NotNil(t, s.Tasks)
}

func TestStore_Add(t *testing.T) {
	t.Parallel()
	s := store.New()

	id := mustAdd(t, s, "buy milk")

	assert.Equal(t, id, uint32(1))
	assert.Equal(t, s.NextID, uint32(2))
	assert.DeepEqual(t, s.Tasks, []store.Task{{ID: 1, Description: "buy milk", Completed: false}})
}

func TestStore_AddAssignsSequentialIDs(t *testing.T) {
	t.Parallel()
	s := store.New()

	seen := make(map[uint32]bool)
	for i := 0; i < 50; i++ {
		before := s.NextID
		id := mustAdd(t, s, "task")
		require.Equal(t, before, id, "id must equal next_id before add")
		require.Equal(t, before+1, s.NextID, "next_id must grow by exactly one")
		require.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
}

func TestStore_AddEmptyDescription(t *testing.T) {
	t.Parallel()
	s := store.New()

	id := mustAdd(t, s, "")

	task := s.Find(id)
	require.NotNil(t, task)
	assert.Equal(t, task.Description, "")
}

func TestStore_Find(t *testing.T) {
	t.Parallel()
	s := newTestStore("a", "b", "c")

	task := s.Find(2)
	require.NotNil(t, task)
	assert.Equal(t, task.Description, "b")

	require.Nil(t, s.Find(99))
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		id      uint32
		want    bool
		wantAll []store.Task
	}{
		{
			name: "existing task",
			id:   1,
			want: true,
			wantAll: []store.Task{
				{ID: 1, Description: "buy bread"},
				{ID: 2, Description: "walk dog"},
			},
		},
		{
			name: "missing task leaves store unchanged",
			id:   99,
			want: false,
			wantAll: []store.Task{
				{ID: 1, Description: "buy milk"},
				{ID: 2, Description: "walk dog"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore("buy milk", "walk dog")

			got := s.Update(tc.id, "buy bread")

			assert.Equal(t, got, tc.want)
			assert.DeepEqual(t, s.Tasks, tc.wantAll)
			assert.Equal(t, s.NextID, uint32(3))
		})
	}
}

func TestStore_UpdateKeepsCompleted(t *testing.T) {
	t.Parallel()
	s := newTestStore("buy milk")
	require.True(t, s.Complete(1))

	require.True(t, s.Update(1, "buy bread"))

	assert.DeepEqual(t, *s.Find(1), store.Task{ID: 1, Description: "buy bread", Completed: true})
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	s := newTestStore("a", "b", "c", "d")
	require.True(t, s.Complete(3))

	require.True(t, s.Delete(2))

	require.Nil(t, s.Find(2))
	assert.Equal(t, s.Len(), 3)
	assert.DeepEqual(t, s.Tasks, []store.Task{
		{ID: 1, Description: "a"},
		{ID: 3, Description: "c", Completed: true},
		{ID: 4, Description: "d"},
	})
	assert.Equal(t, s.NextID, uint32(5))
}

func TestStore_DeleteMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore("a")
	before := s.Clone()

	require.False(t, s.Delete(7))

	assert.DeepEqual(t, s, before)
}

func TestStore_DeleteDoesNotReuseIDs(t *testing.T) {
	t.Parallel()
	s := newTestStore("buy milk")

	require.True(t, s.Delete(1))
	assert.Equal(t, s.Len(), 0)

	id := mustAdd(t, s, "buy eggs")
	assert.Equal(t, id, uint32(2))
}

func TestStore_Complete(t *testing.T) {
	t.Parallel()
	s := newTestStore("buy milk", "walk dog")

	require.True(t, s.Complete(1))
	once := s.Clone()
	require.True(t, s.Complete(1))

	assert.DeepEqual(t, s, once)
	assert.Equal(t, s.Find(1).Completed, true)
	assert.Equal(t, s.Find(2).Completed, false)
}

func TestStore_CompleteMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore("a")
	before := s.Clone()

	require.False(t, s.Complete(42))

	assert.DeepEqual(t, s, before)
}

func TestStore_Clone(t *testing.T) {
	t.Parallel()
	s := newTestStore("a")

	c := s.Clone()
	c.Update(1, "changed")
	mustAdd(t, c, "b")

	assert.Equal(t, s.Find(1).Description, "a")
	assert.Equal(t, s.Len(), 1)
	assert.Equal(t, s.NextID, uint32(2))
}

func TestStore_AddAtLastID(t *testing.T) {
	t.Parallel()
	s := &store.Store{Tasks: []store.Task{}, NextID: store.MaxNextID - 1}

	id := mustAdd(t, s, "last")

	assert.Equal(t, id, uint32(store.MaxNextID-1))
	assert.Equal(t, s.NextID, uint32(store.MaxNextID))
}

func TestStore_AddExhausted(t *testing.T) {
	t.Parallel()
	s := &store.Store{Tasks: []store.Task{{ID: 7, Description: "a"}}, NextID: store.MaxNextID}
	before := s.Clone()

	id, err := s.Add("one too many")

	require.ErrorIs(t, err, store.ErrIDsExhausted)
	assert.Equal(t, id, uint32(0))
	assert.DeepEqual(t, s, before)
}
