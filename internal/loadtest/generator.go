package loadtest

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/okian/talentmatch/internal/domain/benchmark"
	"github.com/okian/talentmatch/internal/domain/model"
)

var (
	roles        = []string{"Data Analyst", "Backend Engineer", "Product Manager", "HR Business Partner", "Sales Lead"}
	levels       = []string{model.LevelJunior, model.LevelMid, model.LevelSenior}
	competencies = []string{"SQL", "Storytelling", "Go", "Negotiation", "Stakeholder management", "Statistics", "Coaching"}
)

// Generate returns n vacancies. Each names one to three distinct benchmark
// ids from [minID, maxID]; the same seed yields the same vacancies.
func Generate(n int, minID, maxID int64, seed int64) []model.Vacancy {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible test data
	span := maxID - minID + 1

	out := make([]model.Vacancy, n)
	for i := range out {
		size := 1 + rng.Intn(benchmark.MaxSize)
		if int64(size) > span {
			size = int(span)
		}
		picked := make(map[int64]struct{}, size)
		ids := make([]string, 0, size)
		for len(ids) < size {
			id := minID + rng.Int63n(span)
			if _, ok := picked[id]; ok {
				continue
			}
			picked[id] = struct{}{}
			ids = append(ids, strconv.FormatInt(id, 10))
		}

		comp := make([]string, 1+rng.Intn(3))
		for j := range comp {
			comp[j] = competencies[rng.Intn(len(competencies))]
		}

		out[i] = model.Vacancy{
			RoleName:     roles[rng.Intn(len(roles))],
			JobLevel:     levels[rng.Intn(len(levels))],
			RolePurpose:  "generated by the load test",
			Competencies: comp,
			BenchmarkIDs: strings.Join(ids, ", "),
		}
	}
	return out
}
