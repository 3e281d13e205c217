package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
	"pgregory.net/rapid"
)

func genText(t *rapid.T, label string) string {
	return rapid.StringMatching(`[\p{L}\p{N} .,:;'"#!?/-]{0,20}`).Draw(t, label)
}

func genBoard(t *rapid.T) models.Board {
	var b models.Board
	id := 1
	for c := range b.Columns {
		n := rapid.IntRange(0, 6).Draw(t, "n")
		b.Columns[c] = make([]models.Task, 0, n)
		for range n {
			b.Columns[c] = append(b.Columns[c], models.Task{
				ID:     id,
				Label:  genText(t, "label"),
				Date:   genText(t, "date"),
				Effort: genText(t, "effort"),
			})
			id++
		}
	}
	b.NextID = id
	return b
}

// Any board survives a save and load in either encoding.
func TestProperty_SaveLoadRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		want := genBoard(rt)
		ext := rapid.SampledFrom([]string{".json", ".yaml"}).Draw(rt, "ext")

		dir, err := os.MkdirTemp("", "boardstore-*")
		if err != nil {
			rt.Fatalf("creating temp dir: %v", err)
		}
		defer func() { _ = os.RemoveAll(dir) }()

		s := NewBoardStore(filepath.Join(dir, "board"+ext), nil)
		if err := s.Save(&want); err != nil {
			rt.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load()
		if err != nil {
			rt.Fatalf("Load() error = %v", err)
		}
		if !got.Equal(want) {
			rt.Fatalf("round trip mismatch:\n got  %+v\n want %+v", *got, want)
		}
	})
}
