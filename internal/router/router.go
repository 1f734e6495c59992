package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"razzrel/internal/config"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/handler"
	"razzrel/internal/middleware"
)

// Handlers groups every HTTP handler mounted by Register.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Product      *handler.ProductHandler
	Booking      *handler.BookingHandler
	Notification *handler.NotificationHandler
	Post         *handler.PostHandler
	Health       *handler.HealthHandler
}

// Guard carries the token verification dependencies.
type Guard struct {
	Verifier    middleware.TokenVerifier
	Revocations middleware.RevocationChecker
	// Roles re-reads the stored role on admin routes. Nil trusts the token claim.
	Roles middleware.RoleSource
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, guard Guard, h Handlers) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = apperrors.NewEchoErrorHandler(!cfg.IsProduction())

	e.GET("/healthz", h.Health.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := middleware.Authenticator(guard.Verifier, guard.Revocations)
	admin := middleware.RequireAdmin(guard.Roles)

	// Public routes
	e.POST("/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)
	e.GET("/api/products", h.Product.ListProducts)
	e.GET("/api/products/:id", h.Product.GetProduct)

	// Secured routes (require a valid token)
	e.POST("/logout", h.Auth.Logout, authn)
	e.GET("/user/profile", h.User.GetProfile, authn)
	e.GET("/admin/users", h.User.ListUsers, authn, admin)

	api := e.Group("/api", authn)

	api.PUT("/users/update-profile", h.User.UpdateProfile)
	api.POST("/user/update", h.User.UpdateProfile)
	api.POST("/user/activity", h.User.SetActivity)
	api.GET("/users", h.User.ListUsersPage)

	api.POST("/products", h.Product.CreateProduct, admin)
	api.PUT("/products/:id", h.Product.UpdateProduct, admin)
	api.DELETE("/products/:id", h.Product.DeleteProduct, admin)

	api.POST("/bookings", h.Booking.CreateBooking)
	api.GET("/bookings", h.Booking.ListBookings)
	api.GET("/bookings/user/:userId", h.Booking.ListUserBookings, middleware.Require(middleware.AdminOrOwnerParam("userId")))
	api.PUT("/bookings/:id/accept", h.Booking.AcceptBooking, admin)
	api.PUT("/bookings/:id/decline", h.Booking.DeclineBooking, admin)
	api.PUT("/bookings/:id/cancel", h.Booking.CancelBooking)

	api.POST("/notifications", h.Notification.CreateNotification)
	api.GET("/notifications", h.Notification.ListNotifications)
	api.GET("/notifications/unread", h.Notification.UnreadCount)
	api.PUT("/notifications/mark-read", h.Notification.MarkAllRead)
	api.PUT("/notifications/:id/read", h.Notification.MarkRead)

	api.GET("/posts", h.Post.ListPosts)
	api.POST("/posts", h.Post.CreatePost)

	staff := api.Group("/admin", admin)
	staff.GET("/notifications", h.Booking.BookingAlerts)
	staff.GET("/notifications/unread", h.Booking.UnseenBookingCount)
	staff.PUT("/notifications/mark-read", h.Booking.MarkBookingsSeen)
}
