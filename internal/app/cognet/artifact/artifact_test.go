package artifact

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/cognet-graph/internal/app/cognet/resolve"
	"github.com/heartmarshall/cognet-graph/internal/domain"
)

func strPtr(s string) *string { return &s }

func drain(t *testing.T, src domain.RowSource) [][]any {
	t.Helper()
	var rows [][]any
	for src.Next() {
		v, err := src.Values()
		require.NoError(t, err)
		rows = append(rows, v)
	}
	require.NoError(t, src.Err())
	return rows
}

func TestEntryWriter_Format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewEntryWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.Write(domain.WordEntry{ConceptID: "C001", Language: "spa", Word: "casa"}))
	require.NoError(t, w.Write(domain.WordEntry{ConceptID: "C002", Language: "rus", Word: "дом", Translit: strPtr("dom")}))
	require.NoError(t, w.Write(domain.WordEntry{ConceptID: "C003", Language: "eng", Word: "well, then"}))
	require.NoError(t, w.Flush())

	want := "concept_id,language,word,translit\n" +
		"C001,spa,casa,\\N\n" +
		"C002,rus,дом,dom\n" +
		"C003,eng,\"well, then\",\\N\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 3, w.Rows())
}

func TestEntrySource_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewEntryWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(domain.WordEntry{ConceptID: "C1", Language: "spa", Word: "casa"}))
	require.NoError(t, w.Write(domain.WordEntry{ConceptID: "C1", Language: "rus", Word: "дом", Translit: strPtr("dom")}))
	require.NoError(t, w.Flush())

	src, err := NewEntrySource(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	rows := drain(t, src)
	assert.Equal(t, [][]any{
		{"C1", "spa", "casa", nil},
		{"C1", "rus", "дом", "dom"},
	}, rows)
}

func TestEntrySource_HeaderValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong names", "a,b,c,d\nC1,spa,casa,\\N\n"},
		{"edge header", "word1_id,word2_id\n1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewEntrySource(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrArtifactHeader)
		})
	}
}

func TestEntrySource_WrongFieldCountStops(t *testing.T) {
	t.Parallel()

	src, err := NewEntrySource(strings.NewReader("concept_id,language,word,translit\nC1,spa,casa,\\N\nC2,spa\n"))
	require.NoError(t, err)

	assert.True(t, src.Next())
	assert.False(t, src.Next())
	assert.Error(t, src.Err())
}

func TestReadEntriesAndLanguages(t *testing.T) {
	t.Parallel()

	input := "concept_id,language,word,translit\n" +
		"C1,spa,casa,\\N\n" +
		"C1,ita,casa,\\N\n" +
		"C2,spa,sol,\\N\n" +
		"C2,rus,солнце,solntse\n"

	entries, err := ReadEntries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Nil(t, entries[0].Translit)
	require.NotNil(t, entries[3].Translit)
	assert.Equal(t, "solntse", *entries[3].Translit)

	codes, err := Languages(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"spa", "ita", "rus"}, codes)
}

func TestEdgeWriterAndSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewEdgeWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(domain.NewEdge(42, 17)))
	require.NoError(t, w.Write(domain.NewEdge(1, 2)))
	require.NoError(t, w.Flush())

	assert.Equal(t, "word1_id,word2_id\n17,42\n1,2\n", buf.String())

	src, err := NewEdgeSource(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(17), int64(42)}, {int64(1), int64(2)}}, drain(t, src))
}

func TestEdgeSource_BadID(t *testing.T) {
	t.Parallel()

	src, err := NewEdgeSource(strings.NewReader("word1_id,word2_id\n1,x\n"))
	require.NoError(t, err)
	require.True(t, src.Next())

	_, err = src.Values()
	assert.ErrorIs(t, err, domain.ErrValidation)

	var recErr *domain.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 2, recErr.Line)
}

func TestSnapshot_FeedsResolver(t *testing.T) {
	t.Parallel()

	entries := []domain.WordEntry{
		{UID: 17, ConceptID: "C001", Language: "spa", Word: "casa"},
		{UID: 42, ConceptID: "C001", Language: "ita", Word: "casa", Translit: strPtr("casa")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, entries))
	assert.Equal(t, "uid,concept_id,language,word,translit\n17,C001,spa,casa,\n42,C001,ita,casa,casa\n", buf.String())

	idx, err := resolve.LoadIndex(&buf)
	require.NoError(t, err)

	uid, ok := idx.Lookup(domain.EntryKey{ConceptID: "C001", Language: "ita", Word: "casa"})
	assert.True(t, ok)
	assert.Equal(t, int64(42), uid)
}
