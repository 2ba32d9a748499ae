package loom

// Selectors for keeping a sub-root's data aligned with a value owned
// elsewhere in the tree. Payloads are the full replacement value.
const (
	// SubRootParentToHost replaces a host's data from outside.
	SubRootParentToHost Selector = "loom.sub-root.parent-to-host"

	// SubRootHostToParent announces the host's data after its own
	// tree mutated it. Target is the peer nominated via WithPeer.
	SubRootHostToParent Selector = "loom.sub-root.host-to-parent"
)

// SubRootHost embeds an independent data root of type U inside a tree
// whose data it does not share. Its subtree runs the full protocol on
// the private value; synchronization with any outside owner happens by
// identity-addressed commands carrying whole values.
type SubRootHost[U Data[U]] struct {
	data    U
	synced  U
	child   *Pod[U]
	peer    WidgetID
	hasPeer bool
}

// NewSubRootHost hosts child over its own data value.
func NewSubRootHost[U Data[U]](initial U, child Widget[U]) *SubRootHost[U] {
	return &SubRootHost[U]{data: initial, synced: initial.Clone(), child: NewPod(child)}
}

// WithPeer nominates the node that receives SubRootHostToParent
// announcements.
func (h *SubRootHost[U]) WithPeer(id WidgetID) *SubRootHost[U] {
	h.peer = id
	h.hasPeer = true
	return h
}

// Data returns the host's current private value.
func (h *SubRootHost[U]) Data() U {
	return h.data
}

func (h *SubRootHost[U]) Event(ctx *EventCtx, ev Event, data *Unit, env Env) {
	if cmd, ok := ev.(CommandEvent); ok && cmd.Command.Is(SubRootParentToHost) {
		if cmd.Command.Target == ctx.WidgetID() {
			next, ok := cmd.Command.Payload.(U)
			if !ok {
				logger.Warn("sub-root received a payload of the wrong type", "payload", cmd.Command.Payload)
				return
			}
			if !h.data.Same(next) {
				h.data = next.Clone()
				h.synced = next.Clone()
				h.child.Update(&UpdateCtx{ctx.ctxBase}, h.data, env)
			}
			ctx.SetHandled()
			return
		}
	}

	h.child.Event(ctx, ev, &h.data, env)
	// The subtree diffs against its own cache, not the outer data.
	h.child.Update(&UpdateCtx{ctx.ctxBase}, h.data, env)

	if h.hasPeer && !h.synced.Same(h.data) {
		h.synced = h.data.Clone()
		ctx.SubmitCommand(Command{
			Selector: SubRootHostToParent,
			Payload:  h.data.Clone(),
			Target:   h.peer,
		})
	}
}

func (h *SubRootHost[U]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data Unit, env Env) {
	h.child.Lifecycle(ctx, lc, h.data, env)
}

func (h *SubRootHost[U]) Update(ctx *UpdateCtx, oldData, data Unit, env Env) {
	// The outer Unit carries nothing; the private value is pushed to
	// the subtree as it changes.
	h.child.Update(ctx, h.data, env)
}

func (h *SubRootHost[U]) Layout(ctx *LayoutCtx, bc BoxConstraints, data Unit, env Env) Size {
	size := h.child.Layout(ctx, bc, h.data, env)
	h.child.SetLayoutRect(ctx, h.data, env, RectFromOriginSize(Point{}, size))
	return size
}

func (h *SubRootHost[U]) Paint(ctx *PaintCtx, data Unit, env Env) {
	h.child.PaintRaw(ctx, h.data, env)
}
