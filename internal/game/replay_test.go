package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayNavigation(t *testing.T) {
	replay := NewReplay("game-123")
	assert.Nil(t, replay.Start())
	assert.Nil(t, replay.Skip(1))
	assert.Nil(t, replay.Next())
	for i := 0; i < 5; i++ {
		replay.Record(ReplayFrame{Turn: i + 1, Step: "UNTAP"})
	}
	require.Equal(t, 5, replay.Size())

	assert.Equal(t, 1, replay.Start().Turn)
	assert.Nil(t, replay.Previous())
	assert.Equal(t, 2, replay.Next().Turn)
	assert.Equal(t, 3, replay.Next().Turn)
	assert.Equal(t, 2, replay.Previous().Turn)
	assert.Equal(t, 2, replay.Current().Turn)

	assert.Equal(t, 5, replay.Skip(10).Turn)
	assert.Nil(t, replay.Next())
	assert.Equal(t, 5, replay.Current().Turn)
	assert.Equal(t, 1, replay.Skip(-10).Turn)
	assert.Nil(t, replay.FrameAt(5))
	assert.Equal(t, 3, replay.FrameAt(2).Turn)
}

func TestGameRecordsReplay(t *testing.T) {
	h := newTestHarness(t, Options{MaxTurns: 2, RecordReplay: true})
	h.game.Run()

	replay := h.game.Replay()
	require.NotNil(t, replay)
	// the opening frame plus one frame per executed step
	assert.Equal(t, 1+2*10, replay.Size())
	assert.Equal(t, "UNTAP", replay.FrameAt(0).Step)
	assert.Equal(t, h.game.Snapshot(), replay.FrameAt(replay.Size()-1).Snapshot)
}

func TestGameWithoutRecordingHasNoReplay(t *testing.T) {
	h := newTestHarness(t, Options{})
	assert.Nil(t, h.game.Replay())
}

func TestReplaySaveAndLoad(t *testing.T) {
	replay := NewReplay("29/31#4")
	replay.Record(ReplayFrame{Turn: 1, Step: "UNTAP", Snapshot: "TURN 1 UNTAP"})
	replay.Record(ReplayFrame{Turn: 1, Step: "UPKEEP", Snapshot: "TURN 1 UPKEEP"})

	dir := t.TempDir()
	path, err := replay.SaveToFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "29-31-4.replay.gz"), path)

	loaded, err := LoadReplayFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, replay.GameID, loaded.GameID)
	assert.Equal(t, replay.Frames, loaded.Frames)
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplayFromFile(filepath.Join(t.TempDir(), "missing.replay.gz"))
	require.Error(t, err)
}
