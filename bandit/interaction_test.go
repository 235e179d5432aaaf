package bandit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlate(t *testing.T) {
	tests := []struct {
		name      string
		docIDs    []string
		slateSize int
		want      []string
		wantErr   error
	}{
		{"exact fit", []string{"a", "b"}, 2, []string{"a", "b"}, nil},
		{"truncates extras", []string{"a", "b", "c"}, 2, []string{"a", "b"}, nil},
		{"duplicate id", []string{"a", "a", "b"}, 3, nil, ErrInvalidSlate},
		{"too few ids", []string{"a"}, 2, nil, ErrInsufficientSlate},
		{"zero slate size", []string{"a"}, 0, nil, ErrInvalidConfiguration},
		{"duplicate beyond cut is ignored", []string{"a", "b", "a"}, 2, []string{"a", "b"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSlate(tt.docIDs, tt.slateSize)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInteraction_ClickedDocID(t *testing.T) {
	in := Interaction{
		Slate:          []string{"a", "b"},
		Seen:           []string{"a"},
		ClickIndex:     intPtr(0),
		ClickPositions: []int{0},
		Reward:         1.0,
	}
	clicked, ok := in.ClickedDocID()
	require.True(t, ok)
	assert.Equal(t, "a", clicked)
}

func TestInteraction_ClickedDocID_NoClick(t *testing.T) {
	in := Interaction{Slate: []string{"a", "b"}, Seen: []string{"a", "b"}}
	_, ok := in.ClickedDocID()
	assert.False(t, ok)
}

func TestInteraction_ClickedDocID_IndexOutsideSeen(t *testing.T) {
	// Position-based interactions index clicks by slate rank; a click at a
	// rank with no Seen counterpart resolves to nothing.
	in := Interaction{
		Slate:          []string{"a", "b", "c"},
		Seen:           []string{"a", "c"},
		ClickIndex:     intPtr(2),
		ClickPositions: []int{2},
		Reward:         1.0,
	}
	_, ok := in.ClickedDocID()
	assert.False(t, ok)
}

func TestInteraction_ClickedDocIDs(t *testing.T) {
	in := Interaction{
		Slate:          []string{"a", "b", "c"},
		Seen:           []string{"a", "b", "c"},
		ClickIndex:     intPtr(0),
		ClickPositions: []int{0, 2},
		Reward:         2.0,
	}
	assert.Equal(t, []string{"a", "c"}, in.ClickedDocIDs())
}

func TestInteraction_ClickedDocIDs_SkipsOutOfRange(t *testing.T) {
	in := Interaction{
		Slate:          []string{"a", "b", "c"},
		Seen:           []string{"a"},
		ClickIndex:     intPtr(0),
		ClickPositions: []int{0, 2},
		Reward:         2.0,
	}
	assert.Equal(t, []string{"a"}, in.ClickedDocIDs())
}
