package models

// Normalize fills in fields that older exports may omit so the rest of
// the code never has to nil-check them: entity collections, the
// litigation block and the per-case trash all default to empty.
func Normalize(snap *Snapshot) {
	if snap.Cases == nil {
		snap.Cases = []Case{}
	}
	if snap.Parties == nil {
		snap.Parties = []Party{}
	}
	for i := range snap.Cases {
		NormalizeCase(&snap.Cases[i])
	}
}

// NormalizeCase fills a single case's optional collections, including
// the trash, which is always present and empty rather than absent.
func NormalizeCase(c *Case) {
	if c.Status == "" {
		c.Status = CaseStatusActive
	}
	if c.Clients == nil {
		c.Clients = []Party{}
	}
	if c.Opponents == nil {
		c.Opponents = []Party{}
	}
	if c.Litigation.Proceedings == nil {
		c.Litigation.Proceedings = []Proceeding{}
	}
	if c.Tasks == nil {
		c.Tasks = []Task{}
	}
	if c.Logs == nil {
		c.Logs = []Log{}
	}
	if c.Reminders == nil {
		c.Reminders = []Reminder{}
	}
	if c.Deadlines == nil {
		c.Deadlines = []Deadline{}
	}
	for i := range c.Tasks {
		if c.Tasks[i].Sessions == nil {
			c.Tasks[i].Sessions = []WorkSession{}
		}
	}
	normalizeTrash(&c.Trash)
}

func normalizeTrash(t *Trash) {
	if t.Tasks == nil {
		t.Tasks = []Task{}
	}
	if t.Logs == nil {
		t.Logs = []Log{}
	}
	if t.Reminders == nil {
		t.Reminders = []Reminder{}
	}
	if t.Deadlines == nil {
		t.Deadlines = []Deadline{}
	}
}
