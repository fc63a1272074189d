package service

import (
	"testing"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

func TestScopeFor_GlobalManager(t *testing.T) {
	scope := ScopeFor(ports.Requester{ID: "g1", Role: domain.RoleGlobalManager})
	if !scope.All {
		t.Error("global manager must be unrestricted")
	}
	if scope.Location != "" || scope.CarrierID != "" {
		t.Errorf("unexpected narrowing: %+v", scope)
	}
}

func TestScopeFor_Staff(t *testing.T) {
	for _, role := range []string{domain.RoleStoreManager, domain.RoleWarehouseStaff} {
		scope := ScopeFor(ports.Requester{ID: "u1", Role: role, Scope: "W1"})
		if scope.All {
			t.Errorf("%s must not be unrestricted", role)
		}
		if scope.Location != "W1" {
			t.Errorf("%s: want location W1, got %q", role, scope.Location)
		}
	}
}

func TestScopeFor_Carrier(t *testing.T) {
	scope := ScopeFor(ports.Requester{ID: "C1", Role: domain.RoleCarrier, Scope: "C1"})
	if scope.CarrierID != "C1" {
		t.Errorf("want carrier id C1, got %q", scope.CarrierID)
	}
}

func TestScopeFor_CarrierFallsBackToSubject(t *testing.T) {
	// Tokens minted before carrier scopes were backfilled carry no scope
	// claim; the subject id is equivalent for a carrier.
	scope := ScopeFor(ports.Requester{ID: "C7", Role: domain.RoleCarrier})
	if scope.CarrierID != "C7" {
		t.Errorf("want fallback to subject C7, got %q", scope.CarrierID)
	}
}

func TestScopeFor_FailsClosed(t *testing.T) {
	for _, requester := range []ports.Requester{
		{ID: "u1", Role: "intruder"},
		{ID: "u2", Role: domain.RoleWarehouseStaff}, // staff without a scope
	} {
		scope := ScopeFor(requester)
		if scope.All || scope.CarrierID != "" || scope.Location != "" {
			t.Errorf("requester %+v must resolve to an empty predicate, got %+v", requester, scope)
		}
	}
}
