// Package report turns ranked raw rows into the match report and the data
// behind its charts.
package report

import (
	"sort"

	"github.com/ecodeclub/ekit/mapx"
	"github.com/ecodeclub/ekit/slice"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/ranking"
)

const (
	// DefaultBins is the default histogram resolution.
	DefaultBins = 20
	fullScale   = 100
)

// Options controls assembly.
type Options struct {
	TopN int // 0 means unrestricted
	Bins int // histogram bins over [0,100]; <= 0 means DefaultBins
}

// Collapse keeps exactly one row per employee, in first-seen order. The
// descriptive fields come from the first row seen and FinalRate is the
// maximum across duplicates. Rates are never summed or averaged.
func Collapse(rows []model.RawRow) []model.RawRow {
	index := make(map[int64]int, len(rows))
	out := make([]model.RawRow, 0, len(rows))
	for _, r := range rows {
		i, ok := index[r.EmployeeID]
		if !ok {
			index[r.EmployeeID] = len(out)
			out = append(out, r)
			continue
		}
		if r.FinalRate > out[i].FinalRate {
			out[i].FinalRate = r.FinalRate
		}
	}
	return out
}

// Assemble builds the report for a run. When rows is empty the returned
// report carries a warning and err is an *EmptyResultError.
func Assemble(runID int64, rows []model.RawRow, excluded int, opts Options) (model.Report, error) {
	if opts.Bins <= 0 {
		opts.Bins = DefaultBins
	}
	rep := model.Report{
		RunID:        runID,
		Rows:         []model.ReportRow{},
		Top:          []model.ReportRow{},
		Distribution: []model.DistributionPoint{},
		Histogram:    histogram(nil, opts.Bins),
		GroupMeans:   []model.GroupMean{},
		Excluded:     excluded,
	}
	if len(rows) == 0 {
		err := &EmptyResultError{RunID: runID, Excluded: excluded}
		rep.Warnings = append(rep.Warnings, err.Error())
		return rep, err
	}

	breakdown := groupRates(rows)
	collapsed := Collapse(rows)
	sort.SliceStable(collapsed, func(i, j int) bool {
		return ranking.Less(collapsed[i].FinalRate, collapsed[i].EmployeeID, collapsed[j].FinalRate, collapsed[j].EmployeeID)
	})

	rep.Rows = slice.Map(collapsed, func(idx int, r model.RawRow) model.ReportRow {
		return model.ReportRow{
			Rank:       idx + 1,
			EmployeeID: r.EmployeeID,
			Name:       r.Name,
			Role:       r.Role,
			Department: r.Department,
			Grade:      r.Grade,
			FinalRate:  r.FinalRate,
			Groups:     breakdown[r.EmployeeID],
		}
	})
	rep.Top = Top(rep.Rows, opts.TopN)
	rep.MaxRate = rep.Rows[0].FinalRate
	rep.Distribution = distribution(rep.Rows)
	rep.Histogram = histogram(rep.Rows, opts.Bins)
	rep.GroupMeans = groupMeans(rows)
	return rep, nil
}

// Top returns the first n rows; n <= 0 returns all of them.
func Top(rows []model.ReportRow, n int) []model.ReportRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// distribution lists every employee's rate in ascending order, ready for a
// horizontal bar chart.
func distribution(rows []model.ReportRow) []model.DistributionPoint {
	out := slice.Map(rows, func(_ int, r model.ReportRow) model.DistributionPoint {
		return model.DistributionPoint{EmployeeID: r.EmployeeID, Name: r.Name, Rate: r.FinalRate}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if c := ranking.CompareRates(out[i].Rate, out[j].Rate); c != 0 {
			return c < 0
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

func histogram(rows []model.ReportRow, bins int) []model.HistogramBin {
	width := float64(fullScale) / float64(bins)
	out := make([]model.HistogramBin, bins)
	for i := range out {
		out[i].Lower = float64(i) * width
		out[i].Upper = float64(i+1) * width
	}
	for _, r := range rows {
		i := int(r.FinalRate / width)
		switch {
		case i < 0:
			i = 0
		case i >= bins:
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// groupRates collects each employee's TGV sub-scores sorted by group name.
// A group seen twice for the same employee keeps its first rate.
func groupRates(rows []model.RawRow) map[int64][]model.GroupRate {
	out := make(map[int64][]model.GroupRate)
	for _, r := range rows {
		if r.Group == "" {
			continue
		}
		if hasGroup(out[r.EmployeeID], r.Group) {
			continue
		}
		out[r.EmployeeID] = append(out[r.EmployeeID], model.GroupRate{Group: r.Group, Rate: r.GroupRate})
	}
	for _, groups := range out {
		sort.Slice(groups, func(i, j int) bool { return groups[i].Group < groups[j].Group })
	}
	return out
}

func hasGroup(groups []model.GroupRate, group string) bool {
	for _, g := range groups {
		if g.Group == group {
			return true
		}
	}
	return false
}

// groupMeans averages the per-group rate over every raw row, one entry per
// TGV sorted by name.
func groupMeans(rows []model.RawRow) []model.GroupMean {
	byGroup := mapx.NewMultiBuiltinMap[string, float64](len(rows))
	for _, r := range rows {
		if r.Group == "" {
			continue
		}
		_ = byGroup.Put(r.Group, r.GroupRate)
	}

	groups := byGroup.Keys()
	sort.Strings(groups)
	return slice.Map(groups, func(_ int, g string) model.GroupMean {
		rates, _ := byGroup.Get(g)
		var sum float64
		for _, v := range rates {
			sum += v
		}
		return model.GroupMean{Group: g, MeanRate: sum / float64(len(rates))}
	})
}
