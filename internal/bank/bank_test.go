package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedBanksLoad(t *testing.T) {
	qs, err := Questions()
	require.NoError(t, err)
	require.NotEmpty(t, qs)

	counts := CountByType(qs)
	assert.Greater(t, counts[TypeBoolean], 0)
	assert.Greater(t, counts[TypeSingle], 0)
	assert.Greater(t, counts[TypeMultiple], 0)

	for _, q := range qs {
		if q.Type == TypeMultiple {
			assert.NotEmpty(t, q.Answer.Multi, "multiple question %q must have a set answer", q.Text)
		} else {
			assert.NotEmpty(t, q.Answer.Single, "question %q must have a single answer", q.Text)
		}
	}

	ss, err := Samples()
	require.NoError(t, err)
	require.NotEmpty(t, ss)
}

func TestParseQuestions_AnswerShapes(t *testing.T) {
	data := []byte(`[
		{"question":"q1","type":"boolean","options":["对","错"],"answer":"对"},
		{"question":"q2","type":"multiple","options":["a","b","c"],"answer":["a","c"]}
	]`)

	qs, err := ParseQuestions(data)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "对", qs[0].Answer.Single)
	assert.Nil(t, qs[0].Answer.Multi)
	assert.Equal(t, []string{"a", "c"}, qs[1].Answer.Multi)
}

func TestParseQuestions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not JSON", `{`},
		{"missing answer", `[{"question":"q","type":"single","options":["a","b"]}]`},
		{"bad type", `[{"question":"q","type":"essay","options":["a","b"],"answer":"a"}]`},
		{"one option", `[{"question":"q","type":"single","options":["a"],"answer":"a"}]`},
		{"empty bank", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestions([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestFingerprint_StableUnderShuffle(t *testing.T) {
	q := Question{
		Text:    "汾酒属于下列哪种香型？",
		Type:    TypeSingle,
		Options: []string{"浓香型", "清香型", "酱香型"},
		Answer:  Answer{Single: "清香型"},
	}

	want := "汾酒属于下列哪种香型？||浓香型|清香型|酱香型"
	assert.Equal(t, want, q.Fingerprint())

	// A session copy with shuffled options must never be used for the key;
	// the key is always derived from the canonical entry.
	shuffled := q
	shuffled.Options = []string{"酱香型", "浓香型", "清香型"}
	assert.NotEqual(t, want, shuffled.Fingerprint())
}

func TestSampleKey(t *testing.T) {
	s := Sample{Name: "1号酒样", Aroma: "浓香型", ABV: 52, Score: 92.4}
	assert.Equal(t, "1号酒样||浓香型||52", s.Key())

	s.ABV = 52.5
	assert.Equal(t, "1号酒样||浓香型||52.5", s.Key())
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"泥窖", "水泥窖"}, SplitTokens("泥窖,水泥窖"))
	assert.Equal(t, []string{"大曲"}, SplitTokens("大曲"))
	assert.Equal(t, []string{"a", "b"}, SplitTokens(" a , b "))
}
