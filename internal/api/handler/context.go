package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CapDevCostaRica/shipment-core/internal/api/middleware"
	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

// ctxRequester projects the verified claims injected by the Auth middleware
// into the requester identity the services consume, with a fast-fail check
// before any service call:
//   - claims must be present (presence proves the middleware ran).
//   - staff roles require a scope; without one the token is structurally
//     valid but operationally unusable, so it is rejected with 401.
func ctxRequester(c echo.Context) (ports.Requester, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return ports.Requester{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	scoped := claims.Role == domain.RoleStoreManager || claims.Role == domain.RoleWarehouseStaff
	if scoped && claims.Scope == "" {
		return ports.Requester{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing scope identity")
	}

	return ports.Requester{
		ID:    claims.Subject,
		Role:  claims.Role,
		Scope: claims.Scope,
	}, nil
}
