package dialog

import (
	"fmt"
	"strings"

	"otc-signal-bot/internal/domain"
)

// Static prompt wording. Presentation details (bold, italics) belong to the
// messaging gateway, not here.

const (
	msgPasswordPrompt = "🔑 Enter Password:"
	msgLoginSuccess   = "✅ Login successful! Use /market to start."
	msgLoginFailure   = "❌ Wrong password. Try /start again."
	msgLoginCancelled = "❌ Login cancelled. Use /start to try again."

	msgMarketPrompt    = "📊 Select Market Type:"
	msgMarketInvalid   = "❌ Invalid choice. Try again."
	msgRealMarketSoon  = "⚠️ Real Market coming soon. Using OTC Market."
	msgAssetsInvalid   = "❌ Invalid asset selection. Enter numbers 1-6 separated by commas (e.g., 1,3,5):"
	msgStrategyInvalid = "❌ Invalid strategy. Try again."
	msgDayInvalid      = "❌ Invalid day. Enter 0-30:"
	msgEndTimePrompt   = "⏰ End time (HH:MM):"
	msgNoAssets        = "❌ No assets selected. Please start again with /start and follow the steps."
	msgGenerating      = "📡 Generating signals..."
	msgGenerateFailed  = "❌ Signal generation failed. Try again."
	msgSaveFailed      = "❌ Failed to save signals. Try again."
	msgNothingToSave   = "❌ No signals to save. Generate signals first."
)

func welcomeMessage(timezone string) string {
	return strings.Join([]string{
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━",
		"🚀 ST-QTX Meta Pro V1.0",
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━",
		"Time Zone: " + timezone,
		"",
		"🌟 Please enter username:",
	}, "\n")
}

func assetListMessage() string {
	lines := make([]string, 0, len(domain.OTCAssets)+2)
	lines = append(lines, "📊 Available OTC Assets:")
	for i, asset := range domain.OTCAssets {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, asset))
	}
	lines = append(lines, "Enter asset numbers (e.g., 1,3,5):")
	return strings.Join(lines, "\n")
}

func strategyListMessage() string {
	lines := make([]string, 0, len(domain.Strategies)+2)
	lines = append(lines, "📈 Select Signal Type:")
	for _, k := range domain.StrategyKeys() {
		lines = append(lines, fmt.Sprintf("%s. %s", k, domain.Strategies[k]))
	}
	lines = append(lines, "Enter choice (1-5):")
	return strings.Join(lines, "\n")
}

func strategyChosenMessage(name string) string {
	return fmt.Sprintf("✅ Selected strategy: %s\n📅 Select a day for analysis (1-30 days ago, 0 for today):", name)
}

func startTimePrompt(timezone string) string {
	return fmt.Sprintf("⏰ Set Signal Time Range (%s)\nStart time (HH:MM):", timezone)
}

func savedMessage(filename string) string {
	return "✅ Signals saved to file: " + filename
}

// marketKeyboard is the reply-keyboard hint sent with the market prompt.
func marketKeyboard() [][]string {
	return [][]string{{"1. OTC Market", "2. Real Market"}}
}
