package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/hay-kot/criterio"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/components"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/components/form"
)

const (
	submitLabel        = "Skicka felanmälan"
	suggestSubmitLabel = "Skicka förslag"
	submittingLabel    = "Skickar..."

	reportSuccess  = "Tack! Din felanmälan har skickats."
	suggestSuccess = "Tack för ditt tips! Vi går igenom förslaget."
	submitFailed   = "Något gick fel. Försök igen senare."

	formModalWidth = 64
)

type formAction int

const (
	formNone formAction = iota
	formCancel
	formSubmit
)

// submitState tracks an in-flight submission of a form dialog.
type submitState struct {
	dialog     *form.Dialog
	submitting bool
}

// begin marks the form as sending. It reports false when a submission is
// already in flight.
func (s *submitState) begin() bool {
	if s.submitting {
		s.dialog.Resume()
		return false
	}
	s.submitting = true
	s.dialog.SetError("")
	s.dialog.SetFieldErrors(nil)
	return true
}

// fail re-enables the form and shows err inline. Validation errors are
// attached to their fields and the first offending field is focused.
func (s *submitState) fail(err error) tea.Cmd {
	s.submitting = false
	s.dialog.Resume()

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		errs := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			if _, seen := errs[fe.Field]; !seen {
				errs[fe.Field] = fe.Err.Error()
			}
		}
		s.dialog.SetFieldErrors(errs)
		s.dialog.SetError("")
		return s.dialog.Focus(fieldErrs[0].Field)
	}

	msg := submitFailed
	var subErr *api.SubmitError
	if errors.As(err, &subErr) && subErr.Message != "" {
		msg = subErr.Message
	}
	s.dialog.SetError(msg)
	return nil
}

func (s *submitState) reset() {
	s.submitting = false
	s.dialog.Reset()
}

func (s *submitState) button(label string) string {
	if s.submitting {
		return styles.ModalButtonDisabledStyle.Render(submittingLabel)
	}
	return styles.ModalButtonSelectedStyle.Render("ctrl+s " + label)
}

// update forwards msg to the dialog unless a submission is in flight.
func (s *submitState) update(msg tea.Msg) (formAction, tea.Cmd) {
	if s.submitting {
		if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
			return formCancel, nil
		}
		return formNone, nil
	}

	var cmd tea.Cmd
	s.dialog, cmd = s.dialog.Update(msg)
	switch {
	case s.dialog.Cancelled():
		return formCancel, cmd
	case s.dialog.Submitted():
		return formSubmit, cmd
	}
	return formNone, cmd
}

func formOverlay(background, title, body string, width, height int) (string, components.Rect) {
	content := lipgloss.JoinVertical(lipgloss.Left, styles.ModalTitleStyle.Render(title), "", body)
	modal := styles.FormModalStyle.Width(min(formModalWidth, max(width-4, 30))).Render(content)
	return components.Overlay(background, modal, width, height)
}

// ReportModal is the two-step error report form for one company.
type ReportModal struct {
	company directory.Company
	step    int
	types   *form.SelectField
	submitState
}

// NewReportModal returns the form for reporting an error about c.
func NewReportModal(c directory.Company) *ReportModal {
	labels := make([]string, len(directory.ReportTypes))
	for i, t := range directory.ReportTypes {
		labels[i] = t.Label
	}

	types := form.NewSelectField(form.Spec{Key: "error_type", Label: "Typ av fel", Required: true}, labels)
	types.Focus()

	return &ReportModal{
		company: c,
		types:   types,
		submitState: submitState{dialog: form.NewDialog("Rapportera fel",
			form.NewTextAreaField(form.Spec{Key: "description", Label: "Beskrivning", Placeholder: "Beskriv vad som är fel", Required: true}),
			form.NewTextAreaField(form.Spec{Key: "suggestion", Label: "Förslag på korrigering", Placeholder: "Valfritt"}),
		)},
	}
}

// Company returns the reported company.
func (r *ReportModal) Company() directory.Company { return r.company }

// Step returns 0 while picking the error type and 1 on the details.
func (r *ReportModal) Step() int { return r.step }

// ErrorType returns the chosen error type.
func (r *ReportModal) ErrorType() directory.ErrorType {
	if i := r.types.Index(); i >= 0 {
		return directory.ReportTypes[i].Type
	}
	return directory.ReportTypes[0].Type
}

// Report builds the payload from the form.
func (r *ReportModal) Report() directory.ErrorReport {
	v := r.dialog.Values()
	return directory.ErrorReport{
		CompanyID:   r.company.ID,
		ErrorType:   r.ErrorType(),
		Description: v["description"],
		Suggestion:  v["suggestion"],
	}
}

// Update handles input. formSubmit is returned once per submission.
func (r *ReportModal) Update(msg tea.Msg) (formAction, tea.Cmd) {
	if r.step == 0 {
		if k, ok := msg.(tea.KeyPressMsg); ok && !r.types.IsFiltering() {
			switch k.String() {
			case "esc":
				return formCancel, nil
			case "enter", "tab":
				r.step = 1
				return formNone, nil
			}
		}
		_, cmd := r.types.Update(msg)
		return formNone, cmd
	}

	action, cmd := r.update(msg)
	if action == formSubmit && !r.begin() {
		return formNone, cmd
	}
	return action, cmd
}

// Fail re-enables the form after a failed submission.
func (r *ReportModal) Fail(err error) tea.Cmd {
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field == "error_type" {
		r.submitting = false
		r.dialog.Resume()
		r.step = 0
		r.types.SetError(fieldErrs[0].Err.Error())
		return nil
	}
	return r.fail(err)
}

// Reset returns the form to its initial step with empty fields.
func (r *ReportModal) Reset() {
	r.step = 0
	r.types.Reset()
	r.reset()
}

// Overlay renders the form over background.
func (r *ReportModal) Overlay(background string, width, height int) (string, components.Rect) {
	header := styles.TextMutedStyle.Render("Företag: ") + styles.TextForegroundBoldStyle.Render(r.company.DisplayName())

	var body string
	if r.step == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			r.types.View(), "",
			styles.FormHelpStyle.Render("↑/↓: välj  /: filtrera  enter: fortsätt  esc: avbryt"),
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			header,
			styles.TextMutedStyle.Render("Typ: ")+r.ErrorType().Label(), "",
			r.dialog.View(), "",
			r.button(submitLabel),
		)
	}
	return formOverlay(background, "Rapportera fel", body, width, height)
}

// SuggestModal proposes a company missing from the directory.
type SuggestModal struct {
	submitState
}

// NewSuggestModal returns an empty suggestion form.
func NewSuggestModal() *SuggestModal {
	return &SuggestModal{submitState: submitState{dialog: form.NewDialog("Tipsa om företag",
		form.NewTextField(form.Spec{Key: "company_name", Label: "Företagsnamn", Placeholder: "Företag AB", Required: true}),
		form.NewTextField(form.Spec{Key: "company_website", Label: "Hemsida", Placeholder: "foretag.se", Required: true}),
		form.NewTextAreaField(form.Spec{Key: "additional_info", Label: "Övrig information", Placeholder: "Valfritt"}),
	)}}
}

// Suggestion builds the payload from the form.
func (s *SuggestModal) Suggestion() directory.Suggestion {
	v := s.dialog.Values()
	return directory.NewSuggestion(v["company_name"], v["company_website"], v["additional_info"])
}

// Update handles input. formSubmit is returned once per submission.
func (s *SuggestModal) Update(msg tea.Msg) (formAction, tea.Cmd) {
	action, cmd := s.update(msg)
	if action == formSubmit && !s.begin() {
		return formNone, cmd
	}
	return action, cmd
}

// Fail re-enables the form after a failed submission.
func (s *SuggestModal) Fail(err error) tea.Cmd { return s.fail(err) }

// Reset clears every field.
func (s *SuggestModal) Reset() { s.reset() }

// Overlay renders the form over background.
func (s *SuggestModal) Overlay(background string, width, height int) (string, components.Rect) {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TextMutedStyle.Render("Saknas ett AI-företag i databasen? Tipsa oss!"), "",
		s.dialog.View(), "",
		s.button(suggestSubmitLabel),
	)
	return formOverlay(background, "Tipsa om företag", body, width, height)
}
