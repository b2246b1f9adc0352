package loadtest

import (
	"errors"
	"fmt"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/ranking"
)

// ErrInconsistentReport is returned when a report breaks an ordering or
// bookkeeping rule.
var ErrInconsistentReport = errors.New("inconsistent report")

// Verify checks a report's rows, top table and chart data against each other.
func Verify(rep model.Report) error {
	seen := make(map[int64]struct{}, len(rep.Rows))
	for i, r := range rep.Rows {
		if r.Rank != i+1 {
			return fmt.Errorf("%w: row %d has rank %d", ErrInconsistentReport, i, r.Rank)
		}
		if r.FinalRate < 0 || r.FinalRate > 100 {
			return fmt.Errorf("%w: employee %d has rate %.3f", ErrInconsistentReport, r.EmployeeID, r.FinalRate)
		}
		if _, dup := seen[r.EmployeeID]; dup {
			return fmt.Errorf("%w: employee %d appears twice", ErrInconsistentReport, r.EmployeeID)
		}
		seen[r.EmployeeID] = struct{}{}
		if i > 0 {
			prev := rep.Rows[i-1]
			if !ranking.Less(prev.FinalRate, prev.EmployeeID, r.FinalRate, r.EmployeeID) {
				return fmt.Errorf("%w: rows %d and %d are out of order", ErrInconsistentReport, i-1, i)
			}
		}
	}

	if len(rep.Top) > len(rep.Rows) {
		return fmt.Errorf("%w: top table is longer than the rows", ErrInconsistentReport)
	}
	for i, r := range rep.Top {
		if row := rep.Rows[i]; r.EmployeeID != row.EmployeeID || r.Rank != row.Rank || r.FinalRate != row.FinalRate {
			return fmt.Errorf("%w: top table differs from the rows at %d", ErrInconsistentReport, i)
		}
	}
	if len(rep.Rows) > 0 && rep.MaxRate != rep.Rows[0].FinalRate {
		return fmt.Errorf("%w: max rate %.3f differs from the first row", ErrInconsistentReport, rep.MaxRate)
	}

	total := 0
	for _, b := range rep.Histogram {
		total += b.Count
	}
	if total != len(rep.Rows) {
		return fmt.Errorf("%w: histogram counts %d rows, report has %d", ErrInconsistentReport, total, len(rep.Rows))
	}

	if len(rep.Distribution) != len(rep.Rows) {
		return fmt.Errorf("%w: distribution has %d points for %d rows", ErrInconsistentReport, len(rep.Distribution), len(rep.Rows))
	}
	for i := 1; i < len(rep.Distribution); i++ {
		if ranking.CompareRates(rep.Distribution[i-1].Rate, rep.Distribution[i].Rate) > 0 {
			return fmt.Errorf("%w: distribution is not ascending at %d", ErrInconsistentReport, i)
		}
	}
	return nil
}
