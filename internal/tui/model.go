// Package tui implements the interactive directory browser.
package tui

import (
	"context"
	"math/rand/v2"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/charts"
	"github.com/Spruttybangbang/aim25s-website/internal/core/appstate"
	"github.com/Spruttybangbang/aim25s-website/internal/core/config"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/notify"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/render"
	"github.com/Spruttybangbang/aim25s-website/internal/tui/animation"
	tuinotify "github.com/Spruttybangbang/aim25s-website/internal/tui/notify"
)

const (
	statsAnimation = 300 * time.Millisecond
	luckyDelay     = 800 * time.Millisecond
)

// Catalog is the data source of the browser.
type Catalog interface {
	Bootstrap(ctx context.Context, device directory.Device) (catalog.Bootstrap, error)
	Columns(ctx context.Context, device directory.Device) ([]directory.Column, error)
	Companies(ctx context.Context, q directory.Query) (api.CompanyPage, error)
	ForgetBattery(ctx context.Context) error
	Stats(ctx context.Context) (directory.DatabaseStats, error)
	Lucky(ctx context.Context, rng *rand.Rand) (directory.Company, error)
	SubmitErrorReport(ctx context.Context, r directory.ErrorReport) (api.SubmitResult, error)
	SubmitSuggestion(ctx context.Context, s directory.Suggestion) (api.SubmitResult, error)
}

// Options configures a Model.
type Options struct {
	Catalog Catalog
	Logger  zerolog.Logger
	Build   BuildInfo
	// Context bounds every request. Defaults to context.Background.
	Context context.Context
	// Rand drives the lucky pick and the confetti. Nil uses a time seed.
	Rand *rand.Rand
}

// Model is the root bubbletea model.
type Model struct {
	cfg     *config.Config
	catalog Catalog
	log     zerolog.Logger
	ctx     context.Context
	seq     *api.Sequencer
	build   BuildInfo
	keys    KeyMap
	rng     *rand.Rand

	state     appstate.State
	width     int
	height    int
	selected  int
	offset    int
	chipFocus render.ChipFocus
	pillFocus int

	search        textinput.Model
	searching     bool
	debounceToken uint64

	luckyGen    uint64
	insightsGen uint64
	// submitGen identifies the form submission whose result may still be
	// shown. Closing a modal advances it.
	submitGen uint64

	spinner    spinner.Model
	modals     *ModalCoordinator
	toasts     *ToastController
	toastView  *ToastView
	notifyBus  *tuinotify.Bus
	battery    animation.Value
	counter    animation.Value
	confetti   animation.Confetti
	gradient   animation.Gradient
	animations bool

	quitting bool
}

// New returns the browser model.
func New(cfg *config.Config, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec // not security relevant
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	search := textinput.New()
	search.Prompt = styles.IconSearch + " "
	search.Placeholder = "Sök efter företag, bransch eller ort..."
	search.CharLimit = 120
	searchStyles := textinput.DefaultStyles(true)
	searchStyles.Focused.Prompt = styles.SearchPromptStyle
	searchStyles.Blurred.Prompt = styles.TextMutedStyle
	search.SetStyles(searchStyles)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	toasts := NewToastController()
	bus := tuinotify.NewBus()
	bus.Subscribe(func(n notify.Notification) {
		toasts.Push(n)
	})

	animations := cfg.UI.AnimationsEnabled()
	keys := DefaultKeyMap()

	return Model{
		cfg:        cfg,
		catalog:    opts.Catalog,
		log:        opts.Logger.With().Str("component", "tui").Logger(),
		ctx:        ctx,
		seq:        &api.Sequencer{},
		build:      opts.Build,
		keys:       keys,
		rng:        rng,
		state:      appstate.New(directory.DeviceDesktop, cfg.PerPage),
		chipFocus:  render.NoChipFocus,
		pillFocus:  -1,
		search:     search,
		spinner:    s,
		modals:     NewModalCoordinator(charts.NewRegistry(), keys),
		toasts:     toasts,
		toastView:  NewToastView(toasts),
		notifyBus:  bus,
		battery:    animation.NewValue("battery", statsAnimation, animation.EaseOutCubic, animations),
		counter:    animation.NewValue("counter", statsAnimation, animation.EaseOutCubic, animations),
		confetti:   animation.NewConfetti(),
		gradient:   animation.NewGradient(animation.GradientStops),
		animations: animations,
	}
}

// State returns the browsing state.
func (m Model) State() appstate.State { return m.state }

// Modals returns the modal coordinator.
func (m Model) Modals() *ModalCoordinator { return m.modals }

// Bus returns the notification bus.
func (m Model) Bus() *tuinotify.Bus { return m.notifyBus }

// Init loads the columns, filter options and cached total for the
// starting device. The first company page is requested once they arrive.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrap(m.state.Device), m.spinner.Tick)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.seq.Stop()
	m.gradient.Stop()
	m.confetti.Stop()
	return m, tea.Quit
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	// Data loaded
	case bootstrapLoadedMsg:
		return m.handleBootstrap(msg)
	case columnsLoadedMsg:
		return m.handleColumns(msg)
	case companiesLoadedMsg:
		return m.handleCompanies(msg)
	case batteryForgottenMsg:
		return m.handleBatteryForgotten(msg)
	case statsLoadedMsg:
		return m.handleStats(msg)
	case luckyPickedMsg:
		return m.handleLuckyPicked(msg)
	case luckyRevealMsg:
		return m.handleLuckyReveal(msg)
	case reportSubmittedMsg:
		return m.handleReportSubmitted(msg)
	case suggestionSubmittedMsg:
		return m.handleSuggestionSubmitted(msg)

	// Timers
	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)
	case animation.TickMsg:
		return m.handleAnimationTick(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case notificationMsg:
		return m.handleNotification(msg)

	// Input
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)
	}

	return m.handleFallthrough(msg)
}
