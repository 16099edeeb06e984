package chat

import "strings"

const (
	intentWeather = "weather"
	intentIPM     = "ipm"
	intentGeneral = "general"
)

var weatherKeywords = []string{"weather", "rain", "temperature", "humidity", "spray", "wind", "forecast"}

var ipmKeywords = []string{"ipm", "strategy", "plan", "treatment plan", "management plan", "long term"}

// detectIntent routes a message by keyword. Weather wins over IPM when both
// match, and anything else is a general conversation turn.
func detectIntent(message string) string {
	lower := strings.ToLower(message)
	for _, kw := range weatherKeywords {
		if strings.Contains(lower, kw) {
			return intentWeather
		}
	}
	for _, kw := range ipmKeywords {
		if strings.Contains(lower, kw) {
			return intentIPM
		}
	}
	return intentGeneral
}
