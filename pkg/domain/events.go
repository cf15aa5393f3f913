package domain

// SelectionEvent describes a point-buffer change observed by a consumer.
type SelectionEvent struct {
	Machine string `json:"machine"`
	// Pos is the affected position in host coordinates (zero for Begin/Remove/Abort).
	Pos PointF `json:"pos"`
	// Points is the buffer length after the change.
	Points int `json:"points"`
}

// LifecycleHooks defines callbacks for consumer observability.
// Every field is optional.
type LifecycleHooks struct {
	OnCommands func(machine string, ev Event, cmds Commands)
	OnBegin    func(*SelectionEvent)
	OnAppend   func(*SelectionEvent)
	OnMove     func(*SelectionEvent)
	OnRemove   func(*SelectionEvent)
	OnAbort    func(*SelectionEvent)
	OnSelected func(machine string, sel Selection)
}

// Merge returns hooks that call h first and then other for every callback.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommands: chain3(h.OnCommands, other.OnCommands),
		OnBegin:    chain1(h.OnBegin, other.OnBegin),
		OnAppend:   chain1(h.OnAppend, other.OnAppend),
		OnMove:     chain1(h.OnMove, other.OnMove),
		OnRemove:   chain1(h.OnRemove, other.OnRemove),
		OnAbort:    chain1(h.OnAbort, other.OnAbort),
		OnSelected: chain2(h.OnSelected, other.OnSelected),
	}
}

func chain1[A any](a, b func(A)) func(A) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(x A) {
		a(x)
		b(x)
	}
}

func chain2[A, B any](a, b func(A, B)) func(A, B) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(x A, y B) {
		a(x, y)
		b(x, y)
	}
}

func chain3[A, B, C any](a, b func(A, B, C)) func(A, B, C) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(x A, y B, z C) {
		a(x, y, z)
		b(x, y, z)
	}
}
