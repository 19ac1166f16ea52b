package domain

import (
	"fmt"
	"time"
)

// AuthPhase tracks where a user is inside the login flow.
type AuthPhase int

const (
	AuthUnauthenticated AuthPhase = iota
	AuthAwaitingUsername
	AuthAwaitingPassword
	AuthAuthenticated
)

func (p AuthPhase) String() string {
	switch p {
	case AuthAwaitingUsername:
		return "awaiting_username"
	case AuthAwaitingPassword:
		return "awaiting_password"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// InLogin reports whether the user is mid-way through the login machine.
func (p AuthPhase) InLogin() bool {
	return p == AuthAwaitingUsername || p == AuthAwaitingPassword
}

type MarketType string

const (
	MarketOTC  MarketType = "OTC"
	MarketReal MarketType = "Real"
)

// Step is the stage of the signal-request flow a session is waiting on.
type Step int

const (
	StepIdle Step = iota
	StepNeedMarket
	StepNeedAssets
	StepNeedStrategy
	StepNeedDay
	StepNeedStartTime
	StepNeedEndTime
	StepReady
)

func (s Step) String() string {
	switch s {
	case StepNeedMarket:
		return "need_market"
	case StepNeedAssets:
		return "need_assets"
	case StepNeedStrategy:
		return "need_strategy"
	case StepNeedDay:
		return "need_day"
	case StepNeedStartTime:
		return "need_start_time"
	case StepNeedEndTime:
		return "need_end_time"
	case StepReady:
		return "ready"
	default:
		return "idle"
	}
}

type SignalDirection string

const (
	DirectionCall SignalDirection = "CALL"
	DirectionPut  SignalDirection = "PUT"
)

// SignalEntry is one timestamped CALL/PUT line produced for a single asset.
type SignalEntry struct {
	Asset     string          `json:"asset"`
	Timeframe string          `json:"timeframe"`
	At        time.Time       `json:"at"`
	Direction SignalDirection `json:"direction"`
}

// SignalBatch is one full generation run: every entry for every selected
// asset, plus the formatted message shown to the user.
type SignalBatch struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	Strategy    string        `json:"strategy"`
	Assets      []string      `json:"assets"`
	Entries     []SignalEntry `json:"entries"`
	Message     string        `json:"message"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Session is the per-user conversation state. Each field is written only by
// the dialog step that owns it; LastSignalMessage is the one field read by
// another step (save).
type Session struct {
	UserID            int64      `json:"user_id"`
	AuthPhase         AuthPhase  `json:"auth_phase"`
	Username          string     `json:"username,omitempty"`
	Step              Step       `json:"step"`
	MarketType        MarketType `json:"market_type,omitempty"`
	SelectedAssets    []string   `json:"selected_assets,omitempty"`
	Strategy          string     `json:"strategy,omitempty"`
	AnalysisDay       int        `json:"analysis_day"`
	StartTime         string     `json:"start_time,omitempty"`
	EndTime           string     `json:"end_time,omitempty"`
	LastSignalMessage string     `json:"last_signal_message,omitempty"`
	LastActivity      time.Time  `json:"last_activity"`
}

func NewSession(userID int64) *Session {
	return &Session{
		UserID:      userID,
		AuthPhase:   AuthUnauthenticated,
		Step:        StepIdle,
		AnalysisDay: -1,
	}
}

// ResetCycle clears one signal-request cycle. The last generated message is
// kept so a pending save still works.
func (s *Session) ResetCycle() {
	s.Step = StepNeedMarket
	s.MarketType = ""
	s.SelectedAssets = nil
	s.Strategy = ""
	s.AnalysisDay = -1
	s.StartTime = ""
	s.EndTime = ""
}

// OTCAssets is the static asset catalog, ordered; user-facing indices are
// 1-based.
var OTCAssets = []string{
	"BRLUSD-OTC",
	"USDNGN-OTC",
	"USDCOP-OTC",
	"USDTRY-OTC",
	"USDZAR-OTC",
	"BTCUSD-OTC",
}

// Strategies is the static strategy catalog keyed by the user-facing choice.
var Strategies = map[string]string{
	"1": "RSI + MA50",
	"2": "MACD",
	"3": "Bollinger Bands",
	"4": "Stochastic Oscillator",
	"5": "All Strategies Combined",
}

// StrategyKeys returns the catalog keys in display order.
func StrategyKeys() []string {
	return []string{"1", "2", "3", "4", "5"}
}

// AssetByOrdinal maps a user-facing 1-based index into the asset catalog.
func AssetByOrdinal(ordinal int) (string, error) {
	if ordinal < 1 || ordinal > len(OTCAssets) {
		return "", fmt.Errorf("asset number %d out of range 1-%d", ordinal, len(OTCAssets))
	}
	return OTCAssets[ordinal-1], nil
}

const (
	MinAnalysisDay = 0
	MaxAnalysisDay = 30
)

// ValidAnalysisDay reports whether d is an acceptable analysis day.
func ValidAnalysisDay(d int) bool {
	return d >= MinAnalysisDay && d <= MaxAnalysisDay
}
