package rudder

import "testing"

func TestFlowState_String_Created(t *testing.T) {
	if s := FlowCreated.String(); s != "created" {
		t.Errorf("expected 'created', got %q", s)
	}
}

func TestFlowState_String_Active(t *testing.T) {
	if s := FlowActive.String(); s != "active" {
		t.Errorf("expected 'active', got %q", s)
	}
}

func TestFlowState_String_TornDown(t *testing.T) {
	if s := FlowTornDown.String(); s != "torn-down" {
		t.Errorf("expected 'torn-down', got %q", s)
	}
}

func TestFlowState_String_Unknown(t *testing.T) {
	unknown := FlowState(999)
	if s := unknown.String(); s != "unknown" {
		t.Errorf("expected 'unknown', got %q", s)
	}
}

func TestFlowState_Values(t *testing.T) {
	// Verify iota ordering
	if FlowCreated != 0 {
		t.Errorf("expected FlowCreated=0, got %d", FlowCreated)
	}
	if FlowActive != 1 {
		t.Errorf("expected FlowActive=1, got %d", FlowActive)
	}
	if FlowTornDown != 2 {
		t.Errorf("expected FlowTornDown=2, got %d", FlowTornDown)
	}
}
