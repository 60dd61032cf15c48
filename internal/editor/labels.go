package editor

import (
	"strconv"

	"fitbysuarez/coaching/internal/domain"
)

// Labels assigns display letters to an exercise list. A run of consecutive
// superset members shares one letter with 1-based positions ("B1", "B2");
// standalone exercises and the first member after a non-superset entry start
// a fresh letter. Labels are derived from order alone and never persisted.
func Labels(exercises []domain.EditorExercise) []string {
	labels := make([]string, len(exercises))
	letter := 0 // 1-based once assigned
	pos := 0
	for i, ex := range exercises {
		inRun := ex.IsSuperset && i > 0 && exercises[i-1].IsSuperset
		if !inRun {
			letter++
			pos = 0
		}
		l := letterFor(letter)
		if ex.IsSuperset {
			pos++
			labels[i] = l + strconv.Itoa(pos)
		} else {
			labels[i] = l
		}
	}
	return labels
}

func letterFor(n int) string {
	// n is 1-based; beyond Z wrap to AA, AB, ... like spreadsheet columns.
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}
