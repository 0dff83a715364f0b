package command

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_Blank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		l := Parse(line)
		assert.Equal(t, "", l.Word, "line %q", line)
		assert.Nil(t, l.Args)
	}
}

func TestParse_WordOnly(t *testing.T) {
	l := Parse("FLEE")
	assert.Equal(t, "flee", l.Word)
	assert.Nil(t, l.Args)
}

func TestParse_WordAndIndex(t *testing.T) {
	l := Parse("  item   3  ")
	assert.Equal(t, "item", l.Word)
	assert.Equal(t, []string{"3"}, l.Args)
}

func TestParse_ArgsKeepCase(t *testing.T) {
	l := Parse("Attack Goblin")
	assert.Equal(t, "attack", l.Word)
	assert.Equal(t, []string{"Goblin"}, l.Args)
}

func TestLineIndex(t *testing.T) {
	tests := []struct {
		line    string
		want    int
		wantErr error
	}{
		{"ability", 0, nil},
		{"s 2", 2, nil},
		{"i 12", 12, nil},
		{"s 0", 0, ErrBadIndex},
		{"s -3", 0, ErrBadIndex},
		{"s two", 0, ErrBadIndex},
		{"i 1 2", 0, ErrExtraArgs},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			n, err := Parse(tt.line).Index()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestPropertyParseAlwaysLowercasesWord(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		l := Parse(word)
		for _, c := range l.Word {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("word %q contains uppercase char in Parse result %q", word, l.Word)
			}
		}
	})
}

func TestPropertyIndexRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 999).Draw(t, "n")
		got, err := Parse("ability " + strconv.Itoa(n)).Index()
		if err != nil || got != n {
			t.Fatalf("index %d parsed as %d, %v", n, got, err)
		}
	})
}
