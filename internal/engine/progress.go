package engine

// Status is the lifecycle stage of an autofill run.
type Status string

// Lifecycle stages in pipeline order.
const (
	StatusIdle               Status = "idle"
	StatusDetecting          Status = "detecting"
	StatusFilling            Status = "filling"
	StatusUploading          Status = "uploading"
	StatusAnsweringQuestions Status = "answering_questions"
	StatusValidating         Status = "validating"
	StatusSubmitting         Status = "submitting"
	StatusCompleted          Status = "completed"
	StatusError              Status = "error"
)

// ProgressEvent is a snapshot of run progress delivered to subscribers.
type ProgressEvent struct {
	Status       Status `json:"status"`
	Message      string `json:"message,omitempty"`
	Current      int    `json:"current"`
	Total        int    `json:"total"`
	CurrentField string `json:"current_field,omitempty"`
}

// ProgressCallback receives progress events during a run.
type ProgressCallback func(ProgressEvent)

// Tracker accumulates run progress and fans events out to subscribers.
// The engine drives it from a single goroutine.
type Tracker struct {
	callbacks []ProgressCallback
	current   ProgressEvent
}

// NewTracker returns a tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{current: ProgressEvent{Status: StatusIdle}}
}

// Subscribe registers a callback for all subsequent events.
func (t *Tracker) Subscribe(cb ProgressCallback) {
	if cb != nil {
		t.callbacks = append(t.callbacks, cb)
	}
}

// Current returns the latest event.
func (t *Tracker) Current() ProgressEvent { return t.current }

// Start resets counters for a run over total fields.
func (t *Tracker) Start(total int) {
	t.current = ProgressEvent{Status: StatusDetecting, Total: total}
	t.emit()
}

// UpdateStatus moves the run to a new lifecycle stage.
func (t *Tracker) UpdateStatus(status Status, message string) {
	t.current.Status = status
	t.current.Message = message
	t.current.CurrentField = ""
	t.emit()
}

// UpdateProgress records that current of total fields are done.
func (t *Tracker) UpdateProgress(current, total int) {
	t.current.Current = current
	t.current.Total = total
	t.emit()
}

// SetCurrentField names the field being worked on.
func (t *Tracker) SetCurrentField(field string) {
	t.current.CurrentField = field
	t.emit()
}

// Complete marks the run finished.
func (t *Tracker) Complete(message string) {
	t.current.Status = StatusCompleted
	t.current.Message = message
	t.current.CurrentField = ""
	t.emit()
}

// Error marks the run failed.
func (t *Tracker) Error(message string) {
	t.current.Status = StatusError
	t.current.Message = message
	t.current.CurrentField = ""
	t.emit()
}

func (t *Tracker) emit() {
	for _, cb := range t.callbacks {
		cb(t.current)
	}
}
