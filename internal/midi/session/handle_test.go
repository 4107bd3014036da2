package session

import (
	"testing"

	"github.com/leandrodaf/midicc/sdk/contracts"
)

func TestHandleReleasesOnce(t *testing.T) {
	released := 0
	h := newHandle(42, contracts.StatusOK, func(ref contracts.ObjectRef) contracts.Status {
		if ref != 42 {
			t.Errorf("released ref %d, want 42", ref)
		}
		released++
		return contracts.StatusOK
	})
	port := h.own(newHandle(43, contracts.StatusOK, nil))

	if ref, ok := port.Ref(); !ok || ref != 43 {
		t.Fatalf("port.Ref() = %d, %v", ref, ok)
	}
	h.Close()
	h.Close()

	if released != 1 {
		t.Errorf("released %d times, want 1", released)
	}
	if _, ok := h.Ref(); ok {
		t.Error("closed handle still valid")
	}
	if _, ok := port.Ref(); ok {
		t.Error("child handle valid after owner was closed")
	}
}

func TestHandleFailedCreation(t *testing.T) {
	h := newHandle(7, contracts.StatusInvalidClient, func(contracts.ObjectRef) contracts.Status {
		t.Error("release called for a handle that was never created")
		return contracts.StatusOK
	})
	if _, ok := h.Ref(); ok {
		t.Error("failed handle reported valid")
	}
	if st := h.Close(); st != contracts.StatusOK {
		t.Errorf("Close() = %v", st)
	}

	var nilHandle *handle
	if _, ok := nilHandle.Ref(); ok {
		t.Error("nil handle reported valid")
	}
}
