package http

import (
	"net/http"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/middleware"
)

// ownerFromRequest builds the cart owner identity from whatever the auth
// middleware put in the request context.
func ownerFromRequest(r *http.Request) domain.Owner {
	return domain.Owner{
		UserID:    middleware.UserIDFromContext(r.Context()),
		Email:     middleware.UserEmailFromContext(r.Context()),
		SessionID: middleware.SessionIDFromContext(r.Context()),
	}
}
