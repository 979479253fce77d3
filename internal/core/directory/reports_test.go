package directory

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorReport_Validate(t *testing.T) {
	valid := ErrorReport{CompanyID: 3, ErrorType: ErrorMissingData, Description: "Fel ort"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *ErrorReport)
		want   string
	}{
		{"missing company", func(r *ErrorReport) { r.CompanyID = 0 }, "company_id"},
		{"bad type", func(r *ErrorReport) { r.ErrorType = "spam" }, "error_type"},
		{"blank description", func(r *ErrorReport) { r.Description = "  " }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.NotEmpty(t, fieldErrs)
			assert.Equal(t, tt.want, fieldErrs[0].Field)
		})
	}
}

func TestSuggestion_Validate(t *testing.T) {
	s := NewSuggestion(" Nyhet AB ", "nyhet.se", "")
	assert.Equal(t, ErrorSuggestNewCompany, s.ErrorType)
	assert.Equal(t, "Nyhet AB", s.CompanyName)
	require.NoError(t, s.Validate())

	err := NewSuggestion("", "", "").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMissingSuggestionFields.Error())

	err = NewSuggestion("Nyhet AB", "not a url", "").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ogiltig webbadress")
}

func TestErrorTypeLabels(t *testing.T) {
	assert.Equal(t, "Saknad data", ErrorMissingData.Label())
	assert.Equal(t, "Förslag på nytt företag", ErrorSuggestNewCompany.Label())

	typ, err := ParseErrorType("company_not_exist")
	require.NoError(t, err)
	assert.Equal(t, ErrorCompanyNotExist, typ)

	_, err = ParseErrorType("suggestion_new_company")
	assert.Error(t, err, "suggestions are not report types")
}
