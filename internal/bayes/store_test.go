package bayes

import (
	"testing"

	"fjacquet/spending-nb/internal/tokenizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type example struct {
	description string
	category    string
}

var statementExamples = []example{
	{"TRADER JOE'S #552 SAN JOSE", "Groceries"},
	{"SAFEWAY STORE 1234", "Groceries"},
	{"CHIPOTLE 0981 SAN JOSE", "Dining"},
	{"UBER *TRIP HELP.UBER.COM", "Transport"},
	{"TRADER JOE'S #552 SAN JOSE", "Groceries"},
	{"SQ *BLUE BOTTLE COFFEE", "Dining"},
	{"", "Misc"},
	{"UBER UBER UBER", "Transport"},
}

func fill(store *Store, examples []example) {
	for _, ex := range examples {
		store.AddExample(ex.description, ex.category)
	}
}

func TestStore_AddExample_Counts(t *testing.T) {
	store := NewStore()
	store.AddExample("pizza pizza place", "Food")

	assert.Equal(t, []string{"Food"}, store.Categories())
	assert.Equal(t, 2, store.TokenCount("Food", "pizza"))
	assert.Equal(t, 1, store.TokenCount("Food", "place"))
	assert.Equal(t, 3, store.WordCount("Food"))
	assert.Equal(t, 2, store.VocabularyCount("pizza"))
	assert.Equal(t, 2, store.VocabularySize())
	assert.Equal(t, 1, store.ExampleCount("Food"))
	assert.Equal(t, 0, store.ExampleCount("Transport"))
	assert.Equal(t, 0, store.TokenCount("Transport", "pizza"))
}

func TestStore_VocabularyEqualsCategorySums(t *testing.T) {
	store := NewStore()
	fill(store, statementExamples)

	snap := store.Snapshot()
	require.NotEmpty(t, snap.Vocabulary)
	for tok, n := range snap.Vocabulary {
		sum := 0
		for _, name := range store.Categories() {
			sum += store.TokenCount(name, tok)
		}
		assert.Equal(t, n, sum, "token %q", tok)
	}
	assert.NoError(t, ValidateSnapshot(snap))
}

func TestStore_ExampleCountEqualsCalls(t *testing.T) {
	store := NewStore()
	fill(store, statementExamples)

	assert.Equal(t, 3, store.ExampleCount("Groceries"))
	assert.Equal(t, 2, store.ExampleCount("Dining"))
	assert.Equal(t, 2, store.ExampleCount("Transport"))
	assert.Equal(t, 1, store.ExampleCount("Misc"))
	assert.Equal(t, len(statementExamples), store.TotalExamples())
}

func TestStore_CategoriesInFirstSeenOrder(t *testing.T) {
	store := NewStore()
	fill(store, statementExamples)

	assert.Equal(t, []string{"Groceries", "Dining", "Transport", "Misc"}, store.Categories())
}

func TestStore_IsComplete(t *testing.T) {
	store := NewStore()
	assert.False(t, store.IsComplete())

	store.AddExample("   ", "Misc")
	assert.False(t, store.IsComplete(), "no vocabulary yet")

	store.AddExample("coffee", "Dining")
	assert.True(t, store.IsComplete())
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	store := NewStore()
	fill(store, statementExamples)
	snap := store.Snapshot()

	restored := NewStore()
	require.NoError(t, restored.Restore(snap))

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, store.Categories(), restored.Categories())
	assert.Equal(t, store.WordCount("Groceries"), restored.WordCount("Groceries"))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.AddExample("coffee", "Dining")
	snap := store.Snapshot()

	store.AddExample("coffee beans", "Dining")

	assert.Equal(t, 1, snap.Vocabulary["coffee"])
	assert.Equal(t, 1, snap.Categories[0].Tokens["coffee"])
	assert.Equal(t, 1, snap.Categories[0].Examples)
}

func TestStore_RestoreRejectsBadSnapshots(t *testing.T) {
	valid := func() Snapshot {
		return Snapshot{
			Tokenizer: tokenizer.ModeWhitespace,
			Categories: []CategorySnapshot{
				{Name: "Food", Tokens: map[string]int{"pizza": 2}, Examples: 1},
				{Name: "Transport", Tokens: map[string]int{"taxi": 1}, Examples: 1},
			},
			Vocabulary: map[string]int{"pizza": 2, "taxi": 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{name: "empty", mutate: func(s *Snapshot) { *s = Snapshot{} }},
		{name: "missing vocabulary", mutate: func(s *Snapshot) { s.Vocabulary = nil }},
		{name: "missing categories", mutate: func(s *Snapshot) { s.Categories = nil }},
		{name: "no examples", mutate: func(s *Snapshot) {
			s.Categories[0].Examples = 0
			s.Categories[1].Examples = 0
		}},
		{name: "vocabulary mismatch", mutate: func(s *Snapshot) { s.Vocabulary["pizza"] = 3 }},
		{name: "extra vocabulary token", mutate: func(s *Snapshot) { s.Vocabulary["ghost"] = 1 }},
		{name: "non-positive token count", mutate: func(s *Snapshot) {
			s.Categories[0].Tokens["pizza"] = 0
			s.Vocabulary["pizza"] = 0
		}},
		{name: "duplicate category", mutate: func(s *Snapshot) { s.Categories[1].Name = "Food" }},
		{name: "other tokenizer", mutate: func(s *Snapshot) { s.Tokenizer = tokenizer.ModeStemmed }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			store.AddExample("untouched", "Keep")
			snap := valid()
			tt.mutate(&snap)

			assert.Error(t, store.Restore(snap))
			assert.Equal(t, []string{"Keep"}, store.Categories(), "store must be left untouched")
		})
	}

	store := NewStore()
	require.NoError(t, store.Restore(valid()))
	assert.Equal(t, []string{"Food", "Transport"}, store.Categories())
}

func TestStore_StemmedMode(t *testing.T) {
	store := NewStoreWithMode(tokenizer.ModeStemmed, tokenizer.Stemmed)
	store.AddExample("Taxi TAXIS", "Transport")

	assert.Equal(t, tokenizer.ModeStemmed, store.Mode())
	assert.Equal(t, 2, store.TokenCount("Transport", "taxi"))
	assert.Equal(t, tokenizer.ModeStemmed, store.Snapshot().Tokenizer)
}
