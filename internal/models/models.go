package models

import "time"

type CaseStatus string

const (
	CaseStatusActive   CaseStatus = "active"
	CaseStatusDormant  CaseStatus = "dormant"
	CaseStatusArchived CaseStatus = "archived"
)

// WorkSession is one contiguous interval of tracked time on a task.
// An open session has End == nil; at most one session per task may be
// open at any time.
type WorkSession struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end"`
}

// Open reports whether the session has not been closed yet.
func (s WorkSession) Open() bool {
	return s.End == nil
}

// Task is a unit of billable work belonging to a case.
// Invariant: IsRunning is true iff the last session is open, and a
// completed task never has an open session.
type Task struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	CustomType  string        `json:"customType,omitempty"`
	Desc        string        `json:"desc"`
	Assignee    string        `json:"assignee"`
	Notes       string        `json:"notes"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt"`
	Sessions    []WorkSession `json:"sessions"`
	IsRunning   bool          `json:"isRunning"`
	IsCompleted bool          `json:"isCompleted"`
}

type Log struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

type Reminder struct {
	ID    string `json:"id"`
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time"` // HH:MM
	Title string `json:"title"`
}

type Deadline struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Party struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"` // company or individual
	IDCode  string `json:"idCode"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
}

type Personnel struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Note    string `json:"note"`
}

// Proceeding is a litigation stage within a case, e.g. first instance.
type Proceeding struct {
	ID           string      `json:"id"`
	StageName    string      `json:"stageName"`
	MyRole       string      `json:"myRole"`
	CaseNo       string      `json:"caseNo"`
	CourtName    string      `json:"courtName"`
	CourtAddress string      `json:"courtAddress"`
	Personnel    []Personnel `json:"personnel"`
}

type Litigation struct {
	Proceedings []Proceeding `json:"proceedings"`
}

// Trash holds soft-deleted entities of a case so they can be restored.
type Trash struct {
	Tasks     []Task     `json:"tasks"`
	Logs      []Log      `json:"logs"`
	Reminders []Reminder `json:"reminders"`
	Deadlines []Deadline `json:"deadlines"`
}

// Case is the top-level aggregate for a legal matter. Every mutation
// operates on a full Case value and the whole aggregate is written
// back to storage afterwards.
type Case struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Type                  string     `json:"type"`
	Status                CaseStatus `json:"status"`
	ClientContactName     string     `json:"clientContactName"`
	ClientContactInfo     string     `json:"clientContactInfo"`
	SpecialProjectRemarks string     `json:"specialProjectRemarks"`
	Clients               []Party    `json:"clients"`
	Opponents             []Party    `json:"opponents"`
	Litigation            Litigation `json:"litigation"`
	Tasks                 []Task     `json:"tasks"`
	Logs                  []Log      `json:"logs"`
	Reminders             []Reminder `json:"reminders"`
	Deadlines             []Deadline `json:"deadlines"`
	Trash                 Trash      `json:"trash"`
}

// Snapshot is the full persisted state, read and replaced wholesale.
type Snapshot struct {
	Cases    []Case  `json:"cases"`
	Parties  []Party `json:"parties"`
	AppTitle string  `json:"appTitle,omitempty"`
}
