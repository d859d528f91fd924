package color

// Fader eases per-slot brightness toward target levels. It is pure state,
// driven by the caller's refresh tick; index bounds are the caller's
// contract.
type Fader struct {
	cur    []float64
	target []float64
}

// NewFader creates a fader for n slots, all dark.
func NewFader(n int) *Fader {
	return &Fader{
		cur:    make([]float64, n),
		target: make([]float64, n),
	}
}

// Len returns the slot count.
func (f *Fader) Len() int {
	return len(f.cur)
}

// SetTarget sets the brightness level slot i eases toward.
func (f *Fader) SetTarget(i int, level float64) {
	f.target[i] = level
}

// Jump snaps slot i to a level immediately, skipping the ease. Used for
// the key-down flash.
func (f *Fader) Jump(i int, level float64) {
	f.cur[i] = level
	f.target[i] = level
}

// Value returns slot i's current brightness.
func (f *Fader) Value(i int) float64 {
	return f.cur[i]
}

// Tick advances every slot one step toward its target and returns the
// indices whose value changed.
func (f *Fader) Tick() []int {
	var changed []int
	for i := range f.cur {
		next := step(f.cur[i], f.target[i])
		if next != f.cur[i] {
			f.cur[i] = next
			changed = append(changed, i)
		}
	}
	return changed
}

// step moves cur one FadeStep toward target, clamping at the target.
func step(cur, target float64) float64 {
	switch {
	case target > cur:
		if target-cur > FadeStep {
			return cur + FadeStep
		}
		return target
	case target < cur:
		if cur-target > FadeStep {
			return cur - FadeStep
		}
		return target
	default:
		return cur
	}
}
