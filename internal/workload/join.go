package workload

// Join is a barrier over a set of pending flow ids: when the set empties
// its continuation fires exactly once. Marking an id already removed
// (a redundant completion, or a completion after the join already fired)
// is a no-op — cancellation is modeled by this idempotent guard rather
// than an explicit cancel primitive.
type Join struct {
	pending      map[string]struct{}
	continuation func()
	fired        bool
}

// NewJoin constructs a Join pending on the given flow ids. A Join created
// with an empty id set fires its continuation immediately.
func NewJoin(flowIDs []string, continuation func()) *Join {
	pending := make(map[string]struct{}, len(flowIDs))
	for _, id := range flowIDs {
		pending[id] = struct{}{}
	}

	j := &Join{pending: pending, continuation: continuation}
	if len(pending) == 0 {
		j.fire()
	}
	return j
}

// MarkComplete removes flowID from the pending set. If the set becomes
// empty, the continuation fires. Marking an id not present (already
// removed, or the join already fired) is a no-op.
func (j *Join) MarkComplete(flowID string) {
	if j.fired {
		return
	}
	if _, ok := j.pending[flowID]; !ok {
		return
	}
	delete(j.pending, flowID)
	if len(j.pending) == 0 {
		j.fire()
	}
}

func (j *Join) fire() {
	if j.fired {
		return
	}
	j.fired = true
	if j.continuation != nil {
		j.continuation()
	}
}

// Pending returns the count of flow ids still outstanding.
func (j *Join) Pending() int {
	return len(j.pending)
}
