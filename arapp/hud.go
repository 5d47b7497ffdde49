package arapp

import (
	"fmt"

	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/puzzle"
)

var controls = []string{
	"confirm: check the shapes (normal difficulty)",
	"next: next level once won, otherwise hide these controls",
	"toggle_difficulty: switch between easy and normal",
	"reset: restart the level",
	"switch_level: go to the other level",
	"toggle_transforms: show the object transforms",
}

func found(ok bool) string {
	if ok {
		return "found"
	}
	return "missing"
}

// hudLines renders the session status as HUD text, top to bottom.
func hudLines(st puzzle.Status, fps float64) []string {
	lines := []string{
		fmt.Sprintf("FPS: %.1f", fps),
		fmt.Sprintf("Level %d | difficulty: %s", st.LevelID, st.Difficulty),
		fmt.Sprintf("Origin marker: %s | Secondary marker: %s", found(st.MarkersFound[0]), found(st.MarkersFound[1])),
	}

	switch {
	case st.Won:
		lines = append(lines, "Well done! Press next to continue.")
	case st.Matched && st.Difficulty == puzzle.DifficultyNormal:
		lines = append(lines, "The shapes fit, press confirm!")
	}

	if st.ShowControls {
		for i, c := range controls {
			if core.Action(i) == core.ACTION_CONFIRM && st.Difficulty == puzzle.DifficultyEasy {
				continue
			}
			lines = append(lines, c)
		}
	}

	if st.DisplayTransforms {
		for i, m := range st.Transforms {
			for row := 0; row < 4; row++ {
				r := m.Row(row)
				lines = append(lines, fmt.Sprintf("object %d row %d: %7.3f %7.3f %7.3f %7.3f", i, row, r.X, r.Y, r.Z, r.W))
			}
		}
	}
	return lines
}
