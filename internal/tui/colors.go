package tui

// Color constants for the gauge TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Hover, highlights, live clock

	// State Colors
	ColorError   = "#EF4444" // High priority
	ColorSuccess = "#22C55E" // Completed
	ColorWarning = "#F59E0B" // Overtime, medium priority
)

// HeatColors maps heatmap intensity 0-3 to a shade of the accent color
var HeatColors = [4]string{"#2A2540", "#4C3A8A", "#7C3AED", "#C4B5FD"}

// PriorityColor returns the display color for a priority name
func PriorityColor(priority string) string {
	switch priority {
	case "High":
		return ColorError
	case "Medium":
		return ColorWarning
	default:
		return ColorSecondaryText
	}
}
