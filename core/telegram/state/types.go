package state

import "time"

// Stage identifies a registration dialogue step.
type Stage string

const (
	// StageIdle indicates there is no active dialogue in the session.
	StageIdle          Stage = "idle"
	StageAwaitingName  Stage = "awaiting_name"
	StageAwaitingEmail Stage = "awaiting_email"
	StageAwaitingPhone Stage = "awaiting_phone"
)

// Active reports whether the stage belongs to a running dialogue.
func (s Stage) Active() bool {
	return s != "" && s != StageIdle
}

// Collected holds the dialogue answers gathered so far.
type Collected struct {
	Name  string
	Email string
	Phone string
}

// Session is the state of one chat. Page outlives the dialogue fields.
type Session struct {
	Stage     Stage
	Collected Collected
	Page      int
	TouchedAt time.Time
}

// Expired describes a session removed by Sweep.
type Expired struct {
	SessionID int64
	Stage     Stage
	IdleFor   time.Duration
}

// Manager stores sessions keyed by chat id. Methods return copies.
type Manager interface {
	Get(sessionID int64) Session
	// Update applies fn to the stored session, creating it when missing.
	Update(sessionID int64, fn func(*Session)) Session

	SetStage(sessionID int64, st Stage)
	GetStage(sessionID int64) Stage
	InProgress(sessionID int64) bool
	// ClearDialogue resets the stage and drops collected fields, keeping Page.
	ClearDialogue(sessionID int64)

	SetPage(sessionID int64, page int)
	GetPage(sessionID int64) int

	Clear(sessionID int64)
	Len() int
	// Sweep removes sessions untouched for longer than ttl and reports them.
	Sweep(now time.Time, ttl time.Duration) []Expired
}
