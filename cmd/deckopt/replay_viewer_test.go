package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magefree/deckopt-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTestReplay(t *testing.T) string {
	t.Helper()
	replay := game.NewReplay("24-36-0")
	for _, step := range []string{"UNTAP", "UPKEEP", "DRAW", "MAIN1"} {
		replay.Record(game.ReplayFrame{Turn: 1, Step: step, Snapshot: "frame " + step + "\n"})
	}
	path, err := replay.SaveToFile(t.TempDir())
	require.NoError(t, err)
	return path
}

func TestReplayViewerNavigates(t *testing.T) {
	path := saveTestReplay(t)
	var out bytes.Buffer
	v, err := NewReplayViewer(path, strings.NewReader("n\n\np\ng 3\nn\nj -10\nq\n"), &out)
	require.NoError(t, err)
	require.NoError(t, v.Run())

	text := out.String()
	assert.Contains(t, text, "Replay 24-36-0: 4 steps")
	order := []string{
		"[step 0/3] turn 1, next UNTAP",
		"[step 1/3] turn 1, next UPKEEP",
		"[step 2/3] turn 1, next DRAW",
		"[step 1/3] turn 1, next UPKEEP",
		"[step 3/3] turn 1, next MAIN1",
		"(no more steps, at 3 of 3)",
		"[step 0/3] turn 1, next UNTAP",
	}
	pos := 0
	for _, want := range order {
		idx := strings.Index(text[pos:], want)
		require.GreaterOrEqual(t, idx, 0, "missing %q after offset %d", want, pos)
		pos += idx + len(want)
	}
}

func TestReplayViewerStopsAtEndOfInput(t *testing.T) {
	path := saveTestReplay(t)
	var out bytes.Buffer
	v, err := NewReplayViewer(path, strings.NewReader("g\nbogus\nn"), &out)
	require.NoError(t, err)
	require.NoError(t, v.Run())

	assert.Contains(t, out.String(), "g needs a number")
	assert.Contains(t, out.String(), "frame UPKEEP")
}

func TestReplayViewerMissingFile(t *testing.T) {
	_, err := NewReplayViewer(filepath.Join(t.TempDir(), "missing.replay.gz"), strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}
