package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReplayFrame is the board between two steps. Step names the step to be
// executed next.
type ReplayFrame struct {
	Turn     int
	Step     string
	Snapshot string
}

// Replay is the sequence of frames recorded while a game was played.
// CurrentIndex is the playback cursor.
type Replay struct {
	GameID       string
	Frames       []ReplayFrame
	CurrentIndex int
}

// NewReplay creates a new replay instance
func NewReplay(gameID string) *Replay {
	return &Replay{GameID: gameID}
}

// Record appends a frame.
func (r *Replay) Record(frame ReplayFrame) {
	r.Frames = append(r.Frames, frame)
}

// Start rewinds to the first frame and returns it, or nil when empty.
func (r *Replay) Start() *ReplayFrame {
	r.CurrentIndex = 0
	return r.FrameAt(0)
}

// Current returns the frame under the cursor, or nil when empty.
func (r *Replay) Current() *ReplayFrame {
	return r.FrameAt(r.CurrentIndex)
}

// Next moves forward one frame and returns it, or nil at the end.
func (r *Replay) Next() *ReplayFrame {
	if r.CurrentIndex+1 < len(r.Frames) {
		r.CurrentIndex++
		return &r.Frames[r.CurrentIndex]
	}
	return nil
}

// Previous moves back one frame and returns it, or nil at the start.
func (r *Replay) Previous() *ReplayFrame {
	if r.CurrentIndex > 0 && r.CurrentIndex < len(r.Frames) {
		r.CurrentIndex--
		return &r.Frames[r.CurrentIndex]
	}
	return nil
}

// Skip moves by count frames, clamped to the recorded range.
func (r *Replay) Skip(count int) *ReplayFrame {
	if len(r.Frames) == 0 {
		return nil
	}
	r.CurrentIndex = min(max(r.CurrentIndex+count, 0), len(r.Frames)-1)
	return &r.Frames[r.CurrentIndex]
}

// Size returns the number of recorded frames.
func (r *Replay) Size() int {
	return len(r.Frames)
}

// FrameAt returns the frame at index, or nil.
func (r *Replay) FrameAt(index int) *ReplayFrame {
	if index >= 0 && index < len(r.Frames) {
		return &r.Frames[index]
	}
	return nil
}

// replayMetadata heads every saved replay file.
type replayMetadata struct {
	GameID     string
	Timestamp  time.Time
	Version    int
	FrameCount int
}

// ReplayFileName maps a game ID to a file name.
func ReplayFileName(gameID string) string {
	safe := strings.NewReplacer("/", "-", "#", "-", string(filepath.Separator), "-").Replace(gameID)
	return safe + ".replay.gz"
}

// SaveToFile writes the replay to a gzipped gob file in directory and
// returns its path.
func (r *Replay) SaveToFile(directory string) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := filepath.Join(directory, ReplayFileName(r.GameID))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gzipWriter)

	metadata := replayMetadata{
		GameID:     r.GameID,
		Timestamp:  time.Now(),
		Version:    1,
		FrameCount: len(r.Frames),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	for i := range r.Frames {
		if err := encoder.Encode(&r.Frames[i]); err != nil {
			return "", fmt.Errorf("failed to encode frame %d: %w", i, err)
		}
	}
	if err := gzipWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to flush replay: %w", err)
	}
	return filename, nil
}

// LoadReplayFromFile reads a replay written by SaveToFile.
func LoadReplayFromFile(path string) (*Replay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != 1 {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	replay := NewReplay(metadata.GameID)
	for i := 0; i < metadata.FrameCount; i++ {
		var frame ReplayFrame
		if err := decoder.Decode(&frame); err != nil {
			return nil, fmt.Errorf("failed to decode frame %d: %w", i, err)
		}
		replay.Frames = append(replay.Frames, frame)
	}
	return replay, nil
}
