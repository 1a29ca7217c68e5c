package world

// Command is a state change requested by an input bridge or UI. Commands
// are applied in FIFO order by Drain on the goroutine that owns the World.
type Command interface {
	apply(w *World) error
}

type (
	// PointerMoveCmd forwards pointer motion.
	PointerMoveCmd struct{ At Point }
	// PointerDownCmd forwards a primary button press.
	PointerDownCmd struct{ At Point }
	// PointerUpCmd forwards a primary button release.
	PointerUpCmd struct{ At Point }
	// WheelCmd forwards a wheel notch delta at a pointer position.
	WheelCmd struct {
		Delta float64
		At    Point
	}
	// ZoomCmd zooms by factor around a screen point.
	ZoomCmd struct {
		At     Point
		Factor float64
	}
	// ClickCmd selects and conquers the country at a point.
	ClickCmd struct{ At Point }
	// PanCmd pans by a screen delta.
	PanCmd struct{ DX, DY float64 }
	// ResizeCmd follows a drawing surface resize.
	ResizeCmd struct{ Width, Height float64 }
	// ConquerCmd conquers a country by id.
	ConquerCmd struct{ Target CountryID }
	// RecruitCmd runs the player recruit action.
	RecruitCmd struct{}
	// ResearchCmd runs the player research action.
	ResearchCmd struct{}
	// AdvanceDaysCmd moves the calendar.
	AdvanceDaysCmd struct{ Days int }
)

func (c PointerMoveCmd) apply(w *World) error { w.PointerMove(c.At); return nil }
func (c PointerDownCmd) apply(w *World) error { w.PointerDown(c.At); return nil }
func (c PointerUpCmd) apply(w *World) error   { _, err := w.PointerUp(c.At); return err }
func (c WheelCmd) apply(w *World) error       { w.Wheel(c.Delta, c.At); return nil }
func (c ZoomCmd) apply(w *World) error        { w.ZoomAt(c.At, c.Factor); return nil }
func (c ClickCmd) apply(w *World) error       { _, err := w.Click(c.At); return err }
func (c PanCmd) apply(w *World) error         { w.Pan(c.DX, c.DY); return nil }
func (c ResizeCmd) apply(w *World) error      { w.Resize(c.Width, c.Height); return nil }
func (c ConquerCmd) apply(w *World) error     { return w.Conquer(c.Target) }
func (RecruitCmd) apply(w *World) error       { return w.Recruit() }
func (ResearchCmd) apply(w *World) error      { return w.Research() }
func (c AdvanceDaysCmd) apply(w *World) error { w.AdvanceDays(c.Days); return nil }

// Enqueue queues a command. It is safe to call from any goroutine.
func (w *World) Enqueue(cmds ...Command) {
	w.queueMu.Lock()
	w.queue = append(w.queue, cmds...)
	w.queueMu.Unlock()
}

// Drain applies every queued command in order and returns their errors,
// one slot per command, nil where the command succeeded.
func (w *World) Drain() []error {
	w.queueMu.Lock()
	pending := w.queue
	w.queue = nil
	w.queueMu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	errs := make([]error, len(pending))
	for i, c := range pending {
		errs[i] = c.apply(w)
	}
	return errs
}

// Pending returns the number of queued commands.
func (w *World) Pending() int {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()
	return len(w.queue)
}
