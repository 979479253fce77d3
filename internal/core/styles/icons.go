package styles

// Plain unicode glyphs so the UI renders without a patched font.
var (
	IconSearch     = "⌕"
	IconLink       = "↗"
	IconStockholm  = "⌂"
	IconEmployer   = "✓"
	IconRemove     = "×"
	IconDice       = "⚄"
	IconDatabase   = "▤"
	IconArrowLeft  = "‹"
	IconArrowRight = "›"
	IconDot        = "•"
	IconPending    = "…"
)

// Notification icons
var (
	IconNotifyInfo    = "ℹ"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✗"
	IconNotifySuccess = "✓"
)

// Info dialog status icons
var (
	IconCheckmark = "✔"
	IconCross     = "✘"
	IconWarning   = "▲"
)
