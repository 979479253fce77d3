package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

// KeyMap holds the bindings of the listing screen.
type KeyMap struct {
	Search       key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	Open         key.Binding
	Bransch      key.Binding
	Tillampning  key.Binding
	ClearFocus   key.Binding
	Stockholm    key.Binding
	Arbetsgivare key.Binding
	Filter       key.Binding
	ClearAll     key.Binding
	PillLeft     key.Binding
	PillRight    key.Binding
	RemovePill   key.Binding
	Lucky        key.Binding
	Insights     key.Binding
	Help         key.Binding
	ReleaseNotes key.Binding
	Suggest      key.Binding
	Report       key.Binding
	Refresh      key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the listing bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "sök")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "upp")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "ned")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "skärm upp")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "skärm ned")),
		NextPage:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "nästa sida")),
		PrevPage:     key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "föregående sida")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mer info")),
		Bransch:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "välj bransch")),
		Tillampning:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "välj tillämpning")),
		ClearFocus:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "avmarkera")),
		Stockholm:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Stor-Stockholm")),
		Arbetsgivare: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "arbetsgivare")),
		Filter:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		ClearAll:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "rensa filter")),
		PillLeft:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "föregående filter")),
		PillRight:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "nästa filter")),
		RemovePill:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "ta bort filter")),
		Lucky:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "jag har tur")),
		Insights:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "databasinsikter")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hjälp")),
		ReleaseNotes: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "nyheter")),
		Suggest:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "tipsa om företag")),
		Report:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rapportera fel")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "uppdatera")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "avsluta")),
	}
}

// ShortHelp is the subset shown in the bottom bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.NextPage, k.Filter, k.Lucky, k.Insights, k.Help, k.Quit}
}

// FullHelp groups every binding for the help modal.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.NextPage, k.PrevPage, k.Open},
		{k.Search, k.Stockholm, k.Arbetsgivare, k.Bransch, k.Tillampning, k.ClearFocus, k.Filter},
		{k.PillLeft, k.PillRight, k.RemovePill, k.ClearAll, k.Refresh},
		{k.Lucky, k.Insights, k.Suggest, k.Report, k.ReleaseNotes, k.Help, k.Quit},
	}
}

// fullHelpGroups names the FullHelp groups.
var fullHelpGroups = []string{"Navigering", "Filtrering", "Aktiva filter", "Övrigt"}

// helpBar renders bindings as "key action" pairs that fit in width.
func helpBar(bindings []key.Binding, width int) string {
	var (
		parts []string
		used  int
	)
	for _, b := range bindings {
		h := b.Help()
		part := styles.TextPrimaryStyle.Render(h.Key) + " " + styles.TextMutedStyle.Render(h.Desc)
		w := len([]rune(h.Key)) + 1 + len([]rune(h.Desc))
		if used > 0 && used+3+w > width {
			break
		}
		if used > 0 {
			used += 3
		}
		used += w
		parts = append(parts, part)
	}
	return styles.HelpBarStyle.Render(strings.Join(parts, styles.TextMutedStyle.Render(" • ")))
}

// keyTable renders the FullHelp groups as markdown tables.
func keyTable(k KeyMap) string {
	var b strings.Builder
	for i, group := range k.FullHelp() {
		b.WriteString("### " + fullHelpGroups[i] + "\n\n| Tangent | Funktion |\n|---|---|\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
