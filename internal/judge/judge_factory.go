package judge

import (
	"errors"
	"fmt"
	"slices"

	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestionDistance = 3

var ErrJudgeNotFound = errors.New("judge not found")

// JudgeFactory looks judges up by name for single-judge execution.
type JudgeFactory struct {
	judges map[string]Judge
}

func NewJudgeFactory(judges []Judge) *JudgeFactory {
	judgesMap := make(map[string]Judge, len(judges))
	for _, j := range judges {
		judgesMap[j.Name()] = j
	}

	return &JudgeFactory{
		judges: judgesMap,
	}
}

func (f *JudgeFactory) Get(judgeName string) (Judge, error) {
	judge, exist := f.judges[judgeName]
	if !exist {
		if suggestion := f.closest(judgeName); suggestion != "" {
			return nil, fmt.Errorf("%w: %s (did you mean %q?)", ErrJudgeNotFound, judgeName, suggestion)
		}
		return nil, fmt.Errorf("%w: %s", ErrJudgeNotFound, judgeName)
	}

	return judge, nil
}

// Names returns the registered judge names, sorted.
func (f *JudgeFactory) Names() []string {
	names := make([]string, 0, len(f.judges))
	for name := range f.judges {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (f *JudgeFactory) closest(judgeName string) string {
	best, bestDistance := "", maxSuggestionDistance+1
	for _, name := range f.Names() {
		if d := levenshtein.ComputeDistance(judgeName, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}
