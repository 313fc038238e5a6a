package router

import (
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fotolab/docs"
	"fotolab/internal/auth"
	"fotolab/internal/config"
	"fotolab/internal/handler"
)

// uploadBodyLimit caps a single upload request.
const uploadBodyLimit = "32M"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate *auth.SessionGate,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	albumHandler *handler.AlbumHandler,
	imageHandler *handler.ImageHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/healthz"
		},
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRoutePath: true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("%s %s (route=%s) - Status: %d - Latency: %v - RemoteIP: %s - RequestID: %s",
				v.Method, v.URI, v.RoutePath, v.Status, v.Latency, v.RemoteIP, v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowCredentials: true,
		}))
	}

	// Add validator
	e.Validator = NewCustomValidator()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/login", authHandler.Login)
	api.POST("/users", userHandler.CreateUser, auth.OptionalMiddleware(gate))

	// Secured routes (require a live session)
	secured := api.Group("", auth.Middleware(gate))

	secured.POST("/logout", authHandler.Logout)
	secured.POST("/upload", uploadHandler.Upload, middleware.BodyLimit(uploadBodyLimit))

	// User routes
	secured.GET("/user", userHandler.CurrentUser)
	secured.GET("/userroles", userHandler.Roles)
	secured.GET("/users", userHandler.ListUsers)
	secured.GET("/users/p", userHandler.ListUsersPaged)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)

	// Album routes
	secured.GET("/user/albums", albumHandler.ListAlbums)
	secured.GET("/user/albums/:id", albumHandler.GetAlbum)
	secured.POST("/albums", albumHandler.CreateAlbum)
	secured.PUT("/albums/:id", albumHandler.UpdateAlbum)
	secured.DELETE("/albums/:id", albumHandler.DeleteAlbum)

	// Image routes
	secured.GET("/user/images", imageHandler.ListImages)
	secured.GET("/user/images/:id", imageHandler.GetImage)
	secured.POST("/images", imageHandler.CreateImage)
	secured.PUT("/images/:id", imageHandler.UpdateImage)
	secured.DELETE("/images/:id", imageHandler.DeleteImage)

	// Album membership routes
	secured.GET("/albums/:id/albumimages", imageHandler.ListAlbumImages)
	secured.PUT("/albums/:id/albumimages/:imageid", imageHandler.UpdateInAlbum)
	secured.POST("/albums/images", imageHandler.AddToAlbum)
	secured.DELETE("/albums/:id/images/:imageid", imageHandler.RemoveFromAlbum)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator reports fields by their JSON names.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
