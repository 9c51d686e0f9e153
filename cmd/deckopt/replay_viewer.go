package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/magefree/deckopt-go/internal/game"
)

const replayHelp = `Replay commands:
  n      -> next step
  p      -> previous step
  j <k>  -> jump k steps (negative goes back)
  g <i>  -> go to step i
  0      -> first step
  q      -> quit`

// ReplayViewer steps through a saved game from a line-oriented reader.
type ReplayViewer struct {
	replay *game.Replay
	in     *bufio.Reader
	out    io.Writer
}

// NewReplayViewer loads the replay at path.
func NewReplayViewer(path string, in io.Reader, out io.Writer) (*ReplayViewer, error) {
	replay, err := game.LoadReplayFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", path, err)
	}
	return &ReplayViewer{replay: replay, in: bufio.NewReader(in), out: out}, nil
}

// Run shows the first frame and then follows commands until quit or end of
// input. An empty line moves to the next frame.
func (v *ReplayViewer) Run() error {
	fmt.Fprintf(v.out, "Replay %s: %d steps\n%s\n", v.replay.GameID, v.replay.Size(), replayHelp)
	v.show(v.replay.Start())

	for {
		fmt.Fprint(v.out, "> ")
		line, err := v.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read console: %w", err)
		}
		if err != nil && strings.TrimSpace(line) == "" {
			return nil
		}

		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			fields = []string{"n"}
		}
		switch fields[0] {
		case "q":
			return nil
		case "n":
			v.show(v.replay.Next())
		case "p":
			v.show(v.replay.Previous())
		case "0":
			v.show(v.replay.Start())
		case "j", "g":
			n, ok := argument(fields)
			if !ok {
				fmt.Fprintf(v.out, "%s needs a number\n", fields[0])
				continue
			}
			if fields[0] == "g" {
				n -= v.replay.CurrentIndex
			}
			v.show(v.replay.Skip(n))
		default:
			fmt.Fprintln(v.out, replayHelp)
		}
		if err != nil {
			return nil
		}
	}
}

func argument(fields []string) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	return n, err == nil
}

func (v *ReplayViewer) show(frame *game.ReplayFrame) {
	if frame == nil {
		if v.replay.Size() == 0 {
			fmt.Fprintln(v.out, "(empty replay)")
			return
		}
		fmt.Fprintf(v.out, "(no more steps, at %d of %d)\n", v.replay.CurrentIndex, v.replay.Size()-1)
		return
	}
	fmt.Fprintf(v.out, "\n[step %d/%d] turn %d, next %s\n%s",
		v.replay.CurrentIndex, v.replay.Size()-1, frame.Turn, frame.Step, frame.Snapshot)
}
