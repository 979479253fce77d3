package directory

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
)

// ErrorType classifies an error report.
type ErrorType string

const (
	ErrorIncorrectInfo     ErrorType = "incorrect_info"
	ErrorCompanyNotExist   ErrorType = "company_not_exist"
	ErrorMissingData       ErrorType = "missing_data"
	ErrorOther             ErrorType = "other"
	ErrorSuggestNewCompany ErrorType = "suggestion_new_company"
)

// ErrorTypeOption pairs a report type with its label.
type ErrorTypeOption struct {
	Type  ErrorType
	Label string
}

// ReportTypes lists the selectable error report types in display order.
var ReportTypes = []ErrorTypeOption{
	{Type: ErrorIncorrectInfo, Label: "Felaktig information"},
	{Type: ErrorCompanyNotExist, Label: "Företaget finns ej"},
	{Type: ErrorMissingData, Label: "Saknad data"},
	{Type: ErrorOther, Label: "Annat"},
}

// Label returns the Swedish label for the type.
func (t ErrorType) Label() string {
	if t == ErrorSuggestNewCompany {
		return "Förslag på nytt företag"
	}
	for _, o := range ReportTypes {
		if o.Type == t {
			return o.Label
		}
	}
	return string(t)
}

// ParseErrorType validates a report type name.
func ParseErrorType(s string) (ErrorType, error) {
	for _, o := range ReportTypes {
		if string(o.Type) == s {
			return o.Type, nil
		}
	}
	return "", fmt.Errorf("unknown error type %q", s)
}

// ErrMissingSuggestionFields mirrors the server message for incomplete suggestions.
var ErrMissingSuggestionFields = errors.New("Företagsnamn och hemsida är obligatoriska") //nolint:staticcheck // user facing message

// ErrorReport is the payload of an error report about a company.
type ErrorReport struct {
	CompanyID   int64     `json:"company_id"`
	ErrorType   ErrorType `json:"error_type"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion"`
}

// Validate checks required fields before submission.
func (r ErrorReport) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("company_id", r.CompanyID, func(id int64) error {
			if id <= 0 {
				return errors.New("saknas")
			}
			return nil
		}),
		criterio.Run("error_type", string(r.ErrorType), func(s string) error {
			_, err := ParseErrorType(s)
			return err
		}),
		criterio.Run("description", r.Description, required("Beskriv felet")),
	)
}

// Suggestion proposes a company that is missing from the directory.
type Suggestion struct {
	ErrorType      ErrorType `json:"error_type"`
	CompanyName    string    `json:"company_name"`
	CompanyWebsite string    `json:"company_website"`
	AdditionalInfo string    `json:"additional_info"`
}

// NewSuggestion builds a suggestion payload with the fixed error type.
func NewSuggestion(name, website, info string) Suggestion {
	return Suggestion{
		ErrorType:      ErrorSuggestNewCompany,
		CompanyName:    strings.TrimSpace(name),
		CompanyWebsite: strings.TrimSpace(website),
		AdditionalInfo: strings.TrimSpace(info),
	}
}

// Validate checks required fields before submission.
func (s Suggestion) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("company_name", s.CompanyName, required(ErrMissingSuggestionFields.Error())),
		criterio.Run("company_website", s.CompanyWebsite, required(ErrMissingSuggestionFields.Error()), website),
	)
}

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func website(s string) error {
	if s == "" {
		return nil
	}
	raw := s
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return fmt.Errorf("ogiltig webbadress %q", s)
	}
	return nil
}
