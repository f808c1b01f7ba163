package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type note struct {
	Id   int
	Text string
}

func (n note) GetId() int { return n.Id }

func (n note) WithId(id int) note {
	n.Id = id
	return n
}

func ids(notes []note) []int {
	out := make([]int, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Id)
	}
	return out
}

func TestStore_Insert(t *testing.T) {
	t.Run("ids start at one and grow", func(t *testing.T) {
		s := New[note]()

		assert.Equal(t, 1, s.Insert(note{Text: "a"}))
		assert.Equal(t, 2, s.Insert(note{Text: "b"}))
		assert.Equal(t, []int{1, 2}, ids(s.All()))
	})

	t.Run("caller supplied id is ignored", func(t *testing.T) {
		s := New[note]()

		id := s.Insert(note{Id: 40, Text: "a"})

		assert.Equal(t, 1, id)
	})

	t.Run("next id is max plus one after deletes", func(t *testing.T) {
		s := New[note]()
		s.Insert(note{Text: "a"})
		s.Insert(note{Text: "b"})
		s.Insert(note{Text: "c"})
		s.Remove(1)
		s.Remove(3)

		assert.Equal(t, 3, s.Insert(note{Text: "d"}))
		assert.Equal(t, []int{2, 3}, ids(s.All()))
	})
}

func TestStore_InsertThenRemoveRestoresContents(t *testing.T) {
	// given
	s := New[note]()
	s.Insert(note{Text: "a"})
	s.Insert(note{Text: "b"})
	before := s.All()

	// when
	id := s.Insert(note{Text: "c"})
	removed := s.Remove(id)

	// then
	assert.True(t, removed)
	assert.Equal(t, before, s.All())
}

func TestStore_ReplaceAndModify(t *testing.T) {
	s := New[note]()
	id := s.Insert(note{Text: "a"})

	assert.True(t, s.Replace(note{Id: id, Text: "b"}))
	assert.False(t, s.Replace(note{Id: 9, Text: "x"}))
	assert.True(t, s.Modify(id, func(n *note) { n.Text += "!" }))
	assert.False(t, s.Modify(9, func(n *note) { n.Text = "x" }))

	stored, ok := s.Get(id)
	assert.True(t, ok)
	assert.Equal(t, "b!", stored.Text)
	assert.Len(t, s.All(), 1)
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := New[note]()
	s.Insert(note{Text: "a"})

	all := s.All()
	all[0].Text = "changed"

	stored, _ := s.Get(1)
	assert.Equal(t, "a", stored.Text)
}

func TestStore_Reset(t *testing.T) {
	s := New[note]()
	s.Insert(note{Text: "a"})

	s.Reset()

	assert.Empty(t, s.All())
	assert.Equal(t, 1, s.Insert(note{Text: "b"}))
}
