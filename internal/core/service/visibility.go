package service

import (
	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

// ScopeFor computes the visibility predicate for a verified requester.
//
//   - global_manager: unrestricted.
//   - store_manager / warehouse_staff: origin or destination must match the
//     requester's scope.
//   - carrier: assigned carrier must match the requester (a carrier's scope
//     is their own id).
//
// Unknown roles and staff without a scope resolve to a predicate that
// matches nothing.
func ScopeFor(requester ports.Requester) ports.ShipmentScope {
	switch requester.Role {
	case domain.RoleGlobalManager:
		return ports.ShipmentScope{All: true}
	case domain.RoleCarrier:
		id := requester.Scope
		if id == "" {
			id = requester.ID
		}
		return ports.ShipmentScope{CarrierID: id}
	default:
		return ports.ShipmentScope{Location: requester.Scope}
	}
}
