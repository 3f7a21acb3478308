package dedupe

import (
	"sort"
	"strings"

	"github.com/agenthands/factscreen/internal/core/model"
	"github.com/agenthands/factscreen/internal/core/validate"
)

const DefaultNegationPrefix = "Nicht"

type factKey struct {
	predicate, subject, object string
}

// FindContradictions pairs every P(a, b). with every <prefix>P(a, b). in the
// batch. Arguments compare after trimming. Statements that do not validate
// are skipped. Results are ordered by positive index, then negative index.
func FindContradictions(statements []string, negationPrefix string) []model.Contradiction {
	if negationPrefix == "" {
		negationPrefix = DefaultNegationPrefix
	}

	positives := make(map[factKey][]int)
	type negative struct {
		key   factKey
		index int
	}
	var negatives []negative

	for i, s := range statements {
		f, ok := validate.Parse(s)
		if !ok {
			continue
		}
		if base, found := strings.CutPrefix(f.Predicate, negationPrefix); found && base != "" {
			negatives = append(negatives, negative{key: factKey{base, f.Subject, f.Object}, index: i})
			continue
		}
		k := factKey{f.Predicate, f.Subject, f.Object}
		positives[k] = append(positives[k], i)
	}

	conflicts := make([]model.Contradiction, 0)
	for _, neg := range negatives {
		for _, pos := range positives[neg.key] {
			conflicts = append(conflicts, model.Contradiction{
				Positive:  pos,
				Negative:  neg.index,
				Predicate: neg.key.predicate,
			})
		}
	}
	sort.Slice(conflicts, func(a, b int) bool {
		if conflicts[a].Positive != conflicts[b].Positive {
			return conflicts[a].Positive < conflicts[b].Positive
		}
		return conflicts[a].Negative < conflicts[b].Negative
	})
	return conflicts
}
