package sitecam

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Task is one multi-frame animation. Tick advances it by dt seconds and
// reports whether it has finished.
type Task interface {
	Tick(dt float64) (done bool)
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc func(dt float64) bool

// Tick calls f.
func (f TaskFunc) Tick(dt float64) bool { return f(dt) }

type taskEntry struct {
	id   uint32
	task Task
}

// Scheduler runs animation tasks once per frame. There is one scheduler per
// Controller; all tasks share its ViewportState, so an engine that starts a
// new chain must cancel the handle of its previous one.
type Scheduler struct {
	tasks  []taskEntry
	nextID uint32
}

// Handle identifies a scheduled task. The zero Handle is inactive.
type Handle struct {
	id uint32
	s  *Scheduler
}

// Schedule adds a task that will first tick on the next Update.
func (s *Scheduler) Schedule(t Task) Handle {
	s.nextID++
	s.tasks = append(s.tasks, taskEntry{id: s.nextID, task: t})
	return Handle{id: s.nextID, s: s}
}

// Cancel removes the task if it is still scheduled. Safe to call on a zero
// or already finished handle.
func (h Handle) Cancel() {
	if h.s == nil {
		return
	}
	h.s.remove(h.id)
}

// Active reports whether the task is still scheduled.
func (h Handle) Active() bool {
	if h.s == nil {
		return false
	}
	for i := range h.s.tasks {
		if h.s.tasks[i].id == h.id {
			return true
		}
	}
	return false
}

func (s *Scheduler) remove(id uint32) {
	for i := range s.tasks {
		if s.tasks[i].id == id {
			copy(s.tasks[i:], s.tasks[i+1:])
			s.tasks[len(s.tasks)-1] = taskEntry{}
			s.tasks = s.tasks[:len(s.tasks)-1]
			return
		}
	}
}

// Len returns the number of scheduled tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Update ticks every task scheduled before this call in schedule order and
// drops the ones that finished. Tasks scheduled or cancelled from inside a
// Tick take effect immediately for the remaining tasks of this frame.
func (s *Scheduler) Update(dt float64) int {
	ticked := 0
	ids := make([]uint32, len(s.tasks))
	for i := range s.tasks {
		ids[i] = s.tasks[i].id
	}
	for _, id := range ids {
		t := s.find(id)
		if t == nil {
			continue
		}
		ticked++
		if t.Tick(dt) {
			s.remove(id)
		}
	}
	return ticked
}

func (s *Scheduler) find(id uint32) Task {
	for i := range s.tasks {
		if s.tasks[i].id == id {
			return s.tasks[i].task
		}
	}
	return nil
}

// tweenTask animates up to 4 float64 fields simultaneously with gween and
// snaps them to their exact end values on completion. apply runs after
// every write.
type tweenTask struct {
	tweens [4]*gween.Tween
	ends   [4]float64
	fields [4]*float64
	count  int
	apply  func()
}

func newTweenTask(apply func()) *tweenTask {
	return &tweenTask{apply: apply}
}

// add registers one field to animate from its current value to end.
func (t *tweenTask) add(field *float64, end, duration float64, fn ease.TweenFunc) {
	if t.count == len(t.tweens) {
		return
	}
	t.tweens[t.count] = gween.New(float32(*field), float32(end), float32(duration), fn)
	t.ends[t.count] = end
	t.fields[t.count] = field
	t.count++
}

// Tick implements Task.
func (t *tweenTask) Tick(dt float64) bool {
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(float32(dt))
		if finished {
			*t.fields[i] = t.ends[i]
		} else {
			*t.fields[i] = float64(val)
			allDone = false
		}
	}
	if t.apply != nil {
		t.apply()
	}
	return allDone
}
