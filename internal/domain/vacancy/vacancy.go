// Package vacancy validates the job definition a matching run starts from.
package vacancy

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/talentmatch/internal/domain/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims every text field and drops blank list entries.
func Normalize(v model.Vacancy) model.Vacancy {
	v.RoleName = strings.TrimSpace(v.RoleName)
	v.JobLevel = strings.TrimSpace(v.JobLevel)
	v.RolePurpose = strings.TrimSpace(v.RolePurpose)
	v.BenchmarkIDs = strings.TrimSpace(v.BenchmarkIDs)
	v.Competencies = NewItemList(v.Competencies...).Items()
	v.Responsibilities = NewItemList(v.Responsibilities...).Items()
	v.WorkInputs = NewItemList(v.WorkInputs...).Items()
	v.WorkOutputs = NewItemList(v.WorkOutputs...).Items()
	v.Qualifications = NewItemList(v.Qualifications...).Items()
	return v
}

// Validate normalizes v and checks its required fields. The first failing
// field is reported as a *MissingRequiredInputError.
func Validate(v model.Vacancy) (model.Vacancy, error) {
	v = Normalize(v)
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return v, &MissingRequiredInputError{Field: jsonName(verrs[0].StructField()), Rule: verrs[0].Tag()}
		}
		return v, err
	}
	return v, nil
}

var fieldNames = map[string]string{
	"RoleName":     "role_name",
	"JobLevel":     "job_level",
	"Competencies": "competencies",
}

func jsonName(field string) string {
	if n, ok := fieldNames[field]; ok {
		return n
	}
	return strings.ToLower(field)
}
