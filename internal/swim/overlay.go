package swim

// Mode selects the message shown over the play area.
type Mode int

const (
	ModeNone Mode = iota
	ModeLoading
	ModeNoPlaysLeft
	ModeMustCompletePrerequisite
	ModeGameOver
	ModeWelcome
	ModeReadyToStart
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeLoading:
		return "Loading"
	case ModeNoPlaysLeft:
		return "NoPlaysLeft"
	case ModeMustCompletePrerequisite:
		return "MustCompletePrerequisite"
	case ModeGameOver:
		return "GameOver"
	case ModeWelcome:
		return "Welcome"
	case ModeReadyToStart:
		return "ReadyToStart"
	default:
		return "Unknown"
	}
}

// OverlayInputs is everything the overlay depends on.
type OverlayInputs struct {
	Loading         bool
	Eligible        bool
	PlayCount       int
	DailyLimit      int
	Started         bool
	Over            bool
	HasPlayedBefore bool
}

// PlaysLeft returns the remaining plays for today.
func (in OverlayInputs) PlaysLeft() int {
	return in.DailyLimit - in.PlayCount
}

// SelectMode picks the overlay. The first matching rule wins, so loading,
// quota and eligibility always take precedence over game-over and welcome.
func SelectMode(in OverlayInputs) Mode {
	playsLeft := in.PlaysLeft()
	switch {
	case in.Loading:
		return ModeLoading
	case playsLeft <= 0:
		return ModeNoPlaysLeft
	case !in.Eligible:
		return ModeMustCompletePrerequisite
	case in.Over && playsLeft > 0:
		return ModeGameOver
	case !in.Started && !in.HasPlayedBefore:
		return ModeWelcome
	case !in.Started && in.HasPlayedBefore:
		return ModeReadyToStart
	default:
		return ModeNone
	}
}
