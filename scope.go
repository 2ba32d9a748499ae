package loom

// ScopeTransfer moves information between an outer data value and the
// private state a Scope owns. Both directions must be cheap to call
// repeatedly: writing the same value twice has to leave the destination
// untouched.
type ScopeTransfer[In Data[In], State Data[State]] interface {
	// ReadInput refreshes the parts of state derived from in.
	ReadInput(state *State, in In)

	// WriteBackInput pushes the shared parts of state back out to in.
	WriteBackInput(state State, in *In)

	// UpdateComputed refreshes the derived parts of state after the
	// outer data moved from old to new, reporting whether anything
	// changed.
	UpdateComputed(old, new In, state *State, env Env) bool
}

// ScopePolicy builds the private state for a Scope the first time data
// flows in, and supplies the transfer used from then on. Create is
// called exactly once.
type ScopePolicy[In Data[In], State Data[State]] interface {
	Create(in In) (State, ScopeTransfer[In, State])
}

// LensScopeTransfer synchronizes one lensed portion of the private
// state with the outer data, in both directions, skipping writes whose
// value already compares Same.
type LensScopeTransfer[In Data[In], State Data[State], P Data[P]] struct {
	lens Lens[State, P]
	get  func(*In) *P
}

// NewLensScopeTransfer builds a transfer that keeps the lensed portion
// of state aligned with the portion of the input exposed by get.
func NewLensScopeTransfer[In Data[In], State Data[State], P Data[P]](lens Lens[State, P], get func(*In) *P) LensScopeTransfer[In, State, P] {
	return LensScopeTransfer[In, State, P]{lens: lens, get: get}
}

func (t LensScopeTransfer[In, State, P]) ReadInput(state *State, in In) {
	inner := *t.get(&in)
	t.lens.WithMut(state, func(p *P) {
		if !(*p).Same(inner) {
			*p = inner.Clone()
		}
	})
}

func (t LensScopeTransfer[In, State, P]) WriteBackInput(state State, in *In) {
	t.lens.With(&state, func(p *P) {
		slot := t.get(in)
		if !(*slot).Same(*p) {
			*slot = (*p).Clone()
		}
	})
}

func (t LensScopeTransfer[In, State, P]) UpdateComputed(old, new In, state *State, env Env) bool {
	inner := *t.get(&new)
	changed := false
	t.lens.WithMut(state, func(p *P) {
		if !(*p).Same(inner) {
			*p = inner.Clone()
			changed = true
		}
	})
	return changed
}

// defaultScopePolicy pairs a state constructor with a fixed transfer.
type defaultScopePolicy[In Data[In], State Data[State]] struct {
	makeState func(In) State
	transfer  ScopeTransfer[In, State]
}

// DefaultScopePolicy builds a policy from a state constructor and a
// transfer.
func DefaultScopePolicy[In Data[In], State Data[State]](makeState func(In) State, transfer ScopeTransfer[In, State]) ScopePolicy[In, State] {
	return defaultScopePolicy[In, State]{makeState: makeState, transfer: transfer}
}

func (p defaultScopePolicy[In, State]) Create(in In) (State, ScopeTransfer[In, State]) {
	return p.makeState(in), p.transfer
}

// isolatedTransfer never moves anything in either direction.
type isolatedTransfer[In Data[In], State Data[State]] struct{}

func (isolatedTransfer[In, State]) ReadInput(*State, In)                    {}
func (isolatedTransfer[In, State]) WriteBackInput(State, *In)               {}
func (isolatedTransfer[In, State]) UpdateComputed(In, In, *State, Env) bool { return false }

// IsolatedScopePolicy builds state from the input once and then keeps
// it fully private: nothing flows in or out afterwards.
func IsolatedScopePolicy[In Data[In], State Data[State]](makeState func(In) State) ScopePolicy[In, State] {
	return DefaultScopePolicy[In, State](makeState, isolatedTransfer[In, State]{})
}

// Scope owns a private State value and presents a Widget[In] to its
// parent while hosting a Widget[State] subtree inside. The private
// state is created lazily on the first dispatch that carries data, and
// the transfer keeps the shared portion synchronized: inputs are read
// before every inner dispatch, and mutations are written back after
// events.
type Scope[In Data[In], State Data[State]] struct {
	policy   ScopePolicy[In, State]
	transfer ScopeTransfer[In, State]
	state    State
	hasState bool
	inner    *Pod[State]
}

// NewScope hosts inner under policy's private state.
func NewScope[In Data[In], State Data[State]](policy ScopePolicy[In, State], inner Widget[State]) *Scope[In, State] {
	return &Scope[In, State]{policy: policy, inner: NewPod(inner)}
}

// State returns the current private state. The second result is false
// before the first data-carrying dispatch.
func (s *Scope[In, State]) State() (State, bool) {
	return s.state, s.hasState
}

func (s *Scope[In, State]) ensureState(in In) {
	if s.hasState {
		s.transfer.ReadInput(&s.state, in)
		return
	}
	s.state, s.transfer = s.policy.Create(in)
	s.policy = nil
	s.hasState = true
}

func (s *Scope[In, State]) Event(ctx *EventCtx, ev Event, data *In, env Env) {
	s.ensureState(*data)
	s.inner.Event(ctx, ev, &s.state, env)
	s.transfer.WriteBackInput(s.state, data)
	// The inner tree may have mutated private state the outer diff
	// cannot see, so force the update pass through.
	ctx.RequestUpdate()
}

func (s *Scope[In, State]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data In, env Env) {
	s.ensureState(data)
	s.inner.Lifecycle(ctx, lc, s.state, env)
}

func (s *Scope[In, State]) Update(ctx *UpdateCtx, oldData, data In, env Env) {
	if !s.hasState {
		s.ensureState(data)
	} else if s.transfer.UpdateComputed(oldData, data, &s.state, env) {
		ctx.RequestLayout()
		ctx.RequestPaint()
	}
	s.inner.Update(ctx, s.state, env)
}

func (s *Scope[In, State]) Layout(ctx *LayoutCtx, bc BoxConstraints, data In, env Env) Size {
	s.ensureState(data)
	size := s.inner.Layout(ctx, bc, s.state, env)
	s.inner.SetLayoutRect(ctx, s.state, env, RectFromOriginSize(Point{}, size))
	return size
}

func (s *Scope[In, State]) Paint(ctx *PaintCtx, data In, env Env) {
	if !s.hasState {
		logger.Warn("scope painted before state creation")
		return
	}
	s.inner.PaintRaw(ctx, s.state, env)
}
