package session

import "github.com/leandrodaf/midicc/sdk/contracts"

// handle exclusively owns one host resource. It is released at most once and
// reports itself invalid afterwards, so a stale reference is never passed back
// to the host.
type handle struct {
	ref      contracts.ObjectRef
	live     bool
	release  func(contracts.ObjectRef) contracts.Status
	children []*handle
}

// newHandle wraps the result of a host create call. A failed call yields an
// invalid handle. release may be nil for resources the host frees together
// with their owner.
func newHandle(ref contracts.ObjectRef, st contracts.Status, release func(contracts.ObjectRef) contracts.Status) *handle {
	return &handle{
		ref:     ref,
		live:    st == contracts.StatusOK && ref != 0,
		release: release,
	}
}

// own makes child die together with h. The host frees the child when h is
// released, so the child itself is only invalidated.
func (h *handle) own(child *handle) *handle {
	h.children = append(h.children, child)
	return child
}

// Ref returns the host reference while the handle is live.
func (h *handle) Ref() (contracts.ObjectRef, bool) {
	if h == nil || !h.live {
		return 0, false
	}
	return h.ref, true
}

// Close releases the resource. Closing an invalid handle is a no-op.
func (h *handle) Close() contracts.Status {
	if h == nil || !h.live {
		return contracts.StatusOK
	}
	h.live = false
	for _, c := range h.children {
		c.live = false
	}
	if h.release == nil {
		return contracts.StatusOK
	}
	return h.release(h.ref)
}
