package audio

import (
	"sync"

	"golang.org/x/text/language"
)

// GameState is a game flow transition the audio core reacts to.
type GameState int

const (
	StateMainSceneEntered GameState = iota
	StateMinigameEntered
	StateMinigameEnd
	StateExitingMinigame
	StateMenu
)

var gameStateNames = [...]string{
	StateMainSceneEntered: "main_scene_entered",
	StateMinigameEntered:  "minigame_entered",
	StateMinigameEnd:      "minigame_end",
	StateExitingMinigame:  "exiting_minigame",
	StateMenu:             "menu",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(gameStateNames) {
		return "unknown"
	}
	return gameStateNames[s]
}

// ParseGameState maps a snake_case state name to its value.
func ParseGameState(s string) (GameState, bool) {
	for i, name := range gameStateNames {
		if name == s {
			return GameState(i), true
		}
	}
	return 0, false
}

// EventType identifies an inbound request.
type EventType int

const (
	EventVolumeChanged EventType = iota
	EventPlaySound
	EventPlayDefinition
	EventAmbience
	EventCharacterVO
	EventCommentatorVO
	EventCharacterSpawned
	EventCharacterDespawned
	EventGameStateChanged
	EventAdPlayback
	EventLanguageChanged
)

// Event is one queued request. Only the fields relevant to Type are set.
type Event struct {
	Type       EventType
	Sound      SoundID
	Definition *SoundDefinition
	Clip       *ClipVariant
	Position   *Vec3
	Group      VolumeGroup
	Value      float64 // volume or fade duration
	Flag       bool    // ambience play/stop, ad playing
	Key        int     // character channel key
	State      GameState
	Language   language.Tag
}

// EventQueue buffers events from any goroutine until the tick drains them.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Drain returns every queued event in arrival order and empties the queue.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
