package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeuristicCount(t *testing.T) {
	require.Equal(t, 0, heuristicCount(""))
	require.Equal(t, 1, heuristicCount("hi"))
	require.Equal(t, 4, heuristicCount("twelve chars"))
}

func TestCounterWithoutEncodingUsesHeuristic(t *testing.T) {
	c := &Counter{}
	require.Equal(t, heuristicCount("some farmer question"), c.Count("some farmer question"))
}
