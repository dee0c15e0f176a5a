// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/kbcheck/pkg/types"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func paper(id, title, abstract, field string) types.PaperRecord {
	return types.PaperRecord{
		ID:            id,
		Title:         title,
		Authors:       []string{"Nakamura, R.", "Ali, S."},
		Abstract:      abstract,
		Category:      "cs.LG",
		ResearchField: field,
		CitationCount: 42,
		Journal:       "Nature Machine Intelligence",
		PaperType:     "Journal Article",
		ArxivID:       "2403.1234",
		PublishedDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	want := paper("p1", "Transformer Scaling Laws", "We measure scaling behavior. Results follow.", "Machine Learning")
	require.NoError(t, store.BulkInsert(ctx, []types.PaperRecord{want}))

	got, err := store.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

func TestSQLiteStoreInsertReplacesOnID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := paper("p1", "Original Title", "Abstract one.", "Machine Learning")
	second := paper("p1", "Revised Title", "Abstract two.", "Machine Learning")
	require.NoError(t, store.BulkInsert(ctx, []types.PaperRecord{first}))
	require.NoError(t, store.BulkInsert(ctx, []types.PaperRecord{second}))

	got, err := store.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "same ID replaces rather than duplicates")
	assert.Equal(t, "Revised Title", got[0].Title)
}

func TestSQLiteStoreQuery(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.BulkInsert(ctx, []types.PaperRecord{
		paper("p1", "Graph Neural Networks for Molecules", "Graphs model molecular structure.", "Machine Learning"),
		paper("p2", "Reinforcement Learning in Robotics", "Agents learn control policies.", "Robotics"),
		paper("p3", "Molecular Dynamics Simulation", "We simulate molecular motion over time.", "Physics"),
	}))

	t.Run("matches on title and abstract terms", func(t *testing.T) {
		hits, err := store.Query(ctx, "What papers discuss molecular structure?", nil, 10)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		for _, h := range hits {
			assert.NotEqual(t, "p2", h.Record.ID, "robotics paper has no matching terms")
		}
	})

	t.Run("scores descend from the top hit", func(t *testing.T) {
		hits, err := store.Query(ctx, "molecular structure simulation", nil, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(hits), 2)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
		for i := 1; i < len(hits); i++ {
			assert.Less(t, hits[i].Score, hits[i-1].Score)
		}
	})

	t.Run("research field filter", func(t *testing.T) {
		hits, err := store.Query(ctx, "molecular", map[string]string{"research_field": "Physics"}, 10)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "p3", hits[0].Record.ID)
	})

	t.Run("topK bounds results", func(t *testing.T) {
		hits, err := store.Query(ctx, "molecular structure simulation graphs", nil, 1)
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})

	t.Run("punctuation-only query is an error", func(t *testing.T) {
		_, err := store.Query(ctx, "???", nil, 10)
		assert.Error(t, err)
	})
}

func TestSQLiteStoreSample(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	var records []types.PaperRecord
	for i := 0; i < 20; i++ {
		records = append(records, paper(
			string(rune('a'+i)), "Title", "Abstract.", "Machine Learning"))
	}
	require.NoError(t, store.BulkInsert(ctx, records))

	sample, err := store.Sample(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, sample, 5)

	all, err := store.Sample(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 20, "sample larger than corpus returns everything")
}

func TestSQLiteStoreAsk(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	t.Run("empty corpus answers gracefully", func(t *testing.T) {
		answer, err := store.Ask(ctx, "What are the trends in machine learning?")
		require.NoError(t, err)
		assert.Contains(t, answer, "No relevant papers")
	})

	t.Run("summarizes top hits", func(t *testing.T) {
		require.NoError(t, store.BulkInsert(ctx, []types.PaperRecord{
			paper("p1", "Federated Learning at Scale", "We train models across devices. Privacy is preserved.", "Machine Learning"),
			paper("p2", "Split Learning Approaches", "Model halves train separately. Communication drops.", "Machine Learning"),
		}))

		answer, err := store.Ask(ctx, "What are the trends in federated learning?")
		require.NoError(t, err)
		assert.Contains(t, answer, "relevant papers in the knowledge base")
		assert.Contains(t, answer, "Machine Learning")
		assert.Contains(t, answer, "Federated Learning at Scale")
	})
}

func TestSQLiteStorePing(t *testing.T) {
	store := testStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestFTSQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain terms", in: "machine learning", want: `"machine" OR "learning"`},
		{name: "punctuation stripped", in: "What's next, really?", want: `"What's" OR "next" OR "really"`},
		{name: "empty", in: "", want: ""},
		{name: "symbols only", in: "?! --", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ftsQuery(tt.in))
		})
	}
}
