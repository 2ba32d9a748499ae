package loom

// AugPod pairs a containment node with per-child augment data owned by
// the parent container, such as a flex factor or a tab key.
type AugPod[T Data[T], A any] struct {
	Pod *Pod[T]
	Aug A
}

// Content manages a container's ordered child set. Implementations
// differ in where children come from: declared up front, derived from
// the data, toggled by predicates, or concatenated.
type Content[T Data[T], A any] interface {
	// AddChild offers a declared child. It reports whether this
	// content accepts further declared children.
	AddChild(child *AugPod[T, A]) bool

	// ContentAdded runs once when the owning container is wired into
	// a tree, before the children receive their own construction
	// pass.
	ContentAdded(data T, env Env)

	// Update reconciles the child set against new data and reports
	// whether membership changed. A true return obligates the caller
	// to route construction to any fresh children.
	Update(old, data T, env Env) bool

	// ChildAt returns the i-th child in order, or nil out of range.
	ChildAt(i int) *AugPod[T, A]

	// LastChild returns the final child, or nil when empty.
	LastChild() *AugPod[T, A]

	// Len returns the number of live children.
	Len() int
}

// ForEachChild visits the live children in order.
func ForEachChild[T Data[T], A any](c Content[T, A], f func(*AugPod[T, A])) {
	for i := 0; i < c.Len(); i++ {
		f(c.ChildAt(i))
	}
}

// StaticContent is a fixed, declared child list.
type StaticContent[T Data[T], A any] struct {
	children []*AugPod[T, A]
}

// StaticOf builds static content from the given children.
func StaticOf[T Data[T], A any](children ...*AugPod[T, A]) *StaticContent[T, A] {
	return &StaticContent[T, A]{children: children}
}

// WithChild appends a declared child and returns the receiver for
// chaining.
func (s *StaticContent[T, A]) WithChild(child Widget[T], aug A) *StaticContent[T, A] {
	s.children = append(s.children, &AugPod[T, A]{Pod: NewPod(child), Aug: aug})
	return s
}

func (s *StaticContent[T, A]) AddChild(child *AugPod[T, A]) bool {
	s.children = append(s.children, child)
	return true
}

func (s *StaticContent[T, A]) ContentAdded(data T, env Env) {}

func (s *StaticContent[T, A]) Update(old, data T, env Env) bool {
	return false
}

func (s *StaticContent[T, A]) ChildAt(i int) *AugPod[T, A] {
	if i < 0 || i >= len(s.children) {
		return nil
	}
	return s.children[i]
}

func (s *StaticContent[T, A]) LastChild() *AugPod[T, A] {
	if len(s.children) == 0 {
		return nil
	}
	return s.children[len(s.children)-1]
}

func (s *StaticContent[T, A]) Len() int {
	return len(s.children)
}

// ForEachContent derives its children from the data: a key function
// projects the data to an ordered key list, and a factory builds the
// widget for each key. Children are cached per key so a key that stays
// present keeps its Pod, and with it its identity and interaction
// state. A key that disappears drops its Pod; reappearing later means a
// fresh node.
type ForEachContent[T Data[T], K comparable, A any] struct {
	keysFromData func(T, Env) []K
	makeChild    func(K) (Widget[T], A)
	keys         []K
	pods         map[K]*AugPod[T, A]
}

// ForEach builds data-derived content from a key projection and a
// per-key widget factory.
func ForEach[T Data[T], K comparable, A any](keysFromData func(T, Env) []K, makeChild func(K) (Widget[T], A)) *ForEachContent[T, K, A] {
	return &ForEachContent[T, K, A]{
		keysFromData: keysFromData,
		makeChild:    makeChild,
		pods:         make(map[K]*AugPod[T, A]),
	}
}

func (f *ForEachContent[T, K, A]) AddChild(child *AugPod[T, A]) bool {
	// Children come from the data, not from declarations.
	return false
}

func (f *ForEachContent[T, K, A]) ContentAdded(data T, env Env) {
	f.reconcile(data, env)
}

func (f *ForEachContent[T, K, A]) Update(old, data T, env Env) bool {
	if old.Same(data) {
		return false
	}
	return f.reconcile(data, env)
}

func (f *ForEachContent[T, K, A]) reconcile(data T, env Env) bool {
	newKeys := f.keysFromData(data, env)
	changed := len(newKeys) != len(f.keys)
	if !changed {
		for i, k := range newKeys {
			if f.keys[i] != k {
				changed = true
				break
			}
		}
	}
	if !changed {
		return false
	}

	live := make(map[K]bool, len(newKeys))
	for _, k := range newKeys {
		live[k] = true
		if _, ok := f.pods[k]; !ok {
			w, aug := f.makeChild(k)
			f.pods[k] = &AugPod[T, A]{Pod: NewPod(w), Aug: aug}
		}
	}
	for k := range f.pods {
		if !live[k] {
			delete(f.pods, k)
		}
	}
	f.keys = newKeys
	return true
}

func (f *ForEachContent[T, K, A]) ChildAt(i int) *AugPod[T, A] {
	if i < 0 || i >= len(f.keys) {
		return nil
	}
	return f.pods[f.keys[i]]
}

func (f *ForEachContent[T, K, A]) LastChild() *AugPod[T, A] {
	if len(f.keys) == 0 {
		return nil
	}
	return f.pods[f.keys[len(f.keys)-1]]
}

func (f *ForEachContent[T, K, A]) Len() int {
	return len(f.keys)
}

// condBranch is one side of a conditional. A branch runs its
// ContentAdded pass lazily, the first time it becomes the shown side.
type condBranch[T Data[T], A any] struct {
	content Content[T, A]
	shown   bool
}

func (b *condBranch[T, A]) contentAdded(data T, env Env) {
	b.content.ContentAdded(data, env)
	b.shown = true
}

func (b *condBranch[T, A]) update(old, data T, env Env) bool {
	if b.shown {
		return b.content.Update(old, data, env)
	}
	b.content.ContentAdded(data, env)
	b.shown = true
	return true
}

// ConditionalContent shows one of two underlying child sets depending on
// a predicate over the data. The hidden side keeps its children; a side
// shown for the first time runs its ContentAdded pass then, and a switch
// reports a membership change either way.
type ConditionalContent[T Data[T], A any] struct {
	cond     func(T, Env) bool
	trueBr   condBranch[T, A]
	falseBr  condBranch[T, A]
	current  bool
	resolved bool
}

// If shows contentTrue while the predicate holds and nothing otherwise.
func If[T Data[T], A any](cond func(T, Env) bool, contentTrue Content[T, A]) *ConditionalContent[T, A] {
	return IfElse(cond, contentTrue, StaticOf[T, A]())
}

// IfElse switches between two child sets based on a predicate.
func IfElse[T Data[T], A any](cond func(T, Env) bool, contentTrue, contentFalse Content[T, A]) *ConditionalContent[T, A] {
	return &ConditionalContent[T, A]{
		cond:    cond,
		trueBr:  condBranch[T, A]{content: contentTrue},
		falseBr: condBranch[T, A]{content: contentFalse},
	}
}

func (c *ConditionalContent[T, A]) AddChild(child *AugPod[T, A]) bool {
	// Children belong to one of the branch sets, not to the switch.
	return false
}

func (c *ConditionalContent[T, A]) branch() *condBranch[T, A] {
	if c.current {
		return &c.trueBr
	}
	return &c.falseBr
}

func (c *ConditionalContent[T, A]) ContentAdded(data T, env Env) {
	c.current = c.cond(data, env)
	c.resolved = true
	c.branch().contentAdded(data, env)
}

func (c *ConditionalContent[T, A]) Update(old, data T, env Env) bool {
	condChanged := false
	if !old.Same(data) {
		now := c.cond(data, env)
		condChanged = !c.resolved || now != c.current
		c.current = now
		c.resolved = true
	}
	if !c.resolved {
		return false
	}
	branchChanged := c.branch().update(old, data, env)
	return condChanged || branchChanged
}

func (c *ConditionalContent[T, A]) ChildAt(i int) *AugPod[T, A] {
	if !c.resolved {
		return nil
	}
	return c.branch().content.ChildAt(i)
}

func (c *ConditionalContent[T, A]) LastChild() *AugPod[T, A] {
	if !c.resolved {
		return nil
	}
	return c.branch().content.LastChild()
}

func (c *ConditionalContent[T, A]) Len() int {
	if !c.resolved {
		return 0
	}
	return c.branch().content.Len()
}

// ComposedContent concatenates two child sets. Declared children always
// go to the second set, so they follow whatever the first set holds.
type ComposedContent[T Data[T], A any] struct {
	First  Content[T, A]
	Second Content[T, A]
}

// Compose2 concatenates two content values in order.
func Compose2[T Data[T], A any](first, second Content[T, A]) *ComposedContent[T, A] {
	return &ComposedContent[T, A]{First: first, Second: second}
}

func (c *ComposedContent[T, A]) AddChild(child *AugPod[T, A]) bool {
	return c.Second.AddChild(child)
}

func (c *ComposedContent[T, A]) ContentAdded(data T, env Env) {
	c.First.ContentAdded(data, env)
	c.Second.ContentAdded(data, env)
}

func (c *ComposedContent[T, A]) Update(old, data T, env Env) bool {
	a := c.First.Update(old, data, env)
	b := c.Second.Update(old, data, env)
	return a || b
}

func (c *ComposedContent[T, A]) ChildAt(i int) *AugPod[T, A] {
	n := c.First.Len()
	if i < n {
		return c.First.ChildAt(i)
	}
	return c.Second.ChildAt(i - n)
}

func (c *ComposedContent[T, A]) LastChild() *AugPod[T, A] {
	if last := c.Second.LastChild(); last != nil {
		return last
	}
	return c.First.LastChild()
}

func (c *ComposedContent[T, A]) Len() int {
	return c.First.Len() + c.Second.Len()
}
