package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jobbotwork/jobbot/internal/model"
)

// Stage is one discrete point in the intake → payment → operate funnel.
type Stage int

const (
	StageEntry Stage = iota
	StageAwaitingCV
	StageProfileSetup
	StagePackageSelection
	StagePaymentPending
	StagePreferences
	StageApplying
)

func (s Stage) String() string {
	switch s {
	case StageEntry:
		return "entry"
	case StageAwaitingCV:
		return "awaiting_cv"
	case StageProfileSetup:
		return "profile_setup"
	case StagePackageSelection:
		return "package_selection"
	case StagePaymentPending:
		return "payment_pending"
	case StagePreferences:
		return "preferences"
	case StageApplying:
		return "applying"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Event is an inbound conversational trigger the state machine reacts to.
type Event int

const (
	// EventStart shows the main menu and begins the intake funnel.
	EventStart Event = iota
	// EventCVAccepted fires after the full extraction pipeline succeeded.
	EventCVAccepted
	// EventViewPackages shows the catalog; reachable from any stage.
	EventViewPackages
	// EventSetupProfile prompts free-text profile fields; any stage.
	EventSetupProfile
	// EventPackageChosen fires after a catalog key was validated and a
	// checkout session created.
	EventPackageChosen
	// EventPreferencesSet records job preferences.
	EventPreferencesSet
	// EventApply triggers the automated application run.
	EventApply
	// EventApplyFinished returns the conversation to the menu.
	EventApplyFinished
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventCVAccepted:
		return "cv_accepted"
	case EventViewPackages:
		return "view_packages"
	case EventSetupProfile:
		return "setup_profile"
	case EventPackageChosen:
		return "package_chosen"
	case EventPreferencesSet:
		return "preferences_set"
	case EventApply:
		return "apply"
	case EventApplyFinished:
		return "apply_finished"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

var ErrInvalidTransition = errors.New("invalid transition")

// anyStage transitions are the menu shortcuts: they are legal no matter
// where the user currently is. Everything else follows the linear funnel.
var anyStage = map[Event]Stage{
	EventStart:        StageAwaitingCV,
	EventViewPackages: StagePackageSelection,
	EventSetupProfile: StageProfileSetup,
}

var transitions = map[Stage]map[Event]Stage{
	StageAwaitingCV: {
		EventCVAccepted: StagePackageSelection,
	},
	StagePackageSelection: {
		EventPackageChosen: StagePaymentPending,
	},
	// Payment completion is not wired to any inbound event; the user moves
	// on by sending preferences once the checkout link was issued.
	StagePaymentPending: {
		EventPreferencesSet: StagePreferences,
	},
	StagePreferences: {
		EventPreferencesSet: StagePreferences,
		EventApply:          StageApplying,
	},
	StageApplying: {
		EventApplyFinished: StageEntry,
	},
}

// Next resolves the stage an event leads to from the current stage.
// Unknown combinations return ErrInvalidTransition and leave the caller's
// stage untouched.
func Next(current Stage, ev Event) (Stage, error) {
	if to, ok := anyStage[ev]; ok {
		return to, nil
	}
	if to, ok := transitions[current][ev]; ok {
		return to, nil
	}
	return current, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, current)
}

// Session is the in-memory conversational state for one user. It is created
// on first interaction and lost on process restart; only committed account
// data survives.
type Session struct {
	mu sync.Mutex

	UserID           int64
	ChatID           int64
	Stage            Stage
	Profile          *model.Profile
	PackageKey       string
	CVURL            string
	PaymentSessionID string
	Preferences      map[string]string
	UpdatedAt        time.Time
}

// Lock serializes event handling within one session so events are processed
// strictly in arrival order even though each update runs on its own
// goroutine.
func (s *Session) Lock() { s.mu.Lock() }

func (s *Session) Unlock() { s.mu.Unlock() }

// Apply advances the session to the stage the event leads to.
func (s *Session) Apply(ev Event) error {
	next, err := Next(s.Stage, ev)
	if err != nil {
		return err
	}
	s.Stage = next
	s.UpdatedAt = time.Now()
	return nil
}

// SetPreference stores one job preference key/value pair.
func (s *Session) SetPreference(key, value string) {
	if s.Preferences == nil {
		s.Preferences = make(map[string]string)
	}
	s.Preferences[key] = value
}
