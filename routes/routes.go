package routes

import (
	"github.com/unistay-app/unistay/backend/config"
	"github.com/unistay-app/unistay/backend/controllers"
	"github.com/unistay-app/unistay/backend/middleware"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func Routes(router *mux.Router, cols *config.Collections, cache *redis.Client) {
	authController := controllers.NewAuthController(cols.Users)
	userController := controllers.NewUserController(cols.Users)
	propertyController := controllers.NewPropertyController(cols.Properties, cache)
	postController := controllers.NewPostController(cols.Posts)
	bookmarkController := controllers.NewBookmarkController(cols.Bookmarks, cols.Properties)

	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/register", authController.Register).Methods("POST")
	api.HandleFunc("/auth/login", authController.Login).Methods("POST")

	// Public reads
	api.HandleFunc("/properties", propertyController.List).Methods("GET")
	api.HandleFunc("/properties/{id}", propertyController.Get).Methods("GET")
	api.HandleFunc("/posts", postController.List).Methods("GET")
	api.HandleFunc("/posts/{id}", postController.Get).Methods("GET")

	// Profile routes require authentication
	me := api.PathPrefix("/me").Subrouter()
	me.Use(middleware.AuthMiddleware)
	me.HandleFunc("", userController.Me).Methods("GET")
	me.HandleFunc("", userController.UpdateMe).Methods("PUT")

	// Post mutations require authentication; authorship is enforced per-handler
	posts := api.PathPrefix("/posts").Subrouter()
	posts.Use(middleware.AuthMiddleware)
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id}", postController.Update).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")

	// Bookmarks are scoped to the authenticated caller
	bookmarks := api.PathPrefix("/bookmarks").Subrouter()
	bookmarks.Use(middleware.AuthMiddleware)
	bookmarks.HandleFunc("", bookmarkController.List).Methods("GET")
	bookmarks.HandleFunc("", bookmarkController.Create).Methods("POST")
	bookmarks.HandleFunc("/{propertyId}", bookmarkController.Delete).Methods("DELETE")

	// Property mutations are admin-only
	admin := api.PathPrefix("/properties").Subrouter()
	admin.Use(middleware.AuthMiddleware, middleware.RequireAdmin)
	admin.HandleFunc("", propertyController.Create).Methods("POST")
	admin.HandleFunc("/{id}", propertyController.Update).Methods("PUT")
	admin.HandleFunc("/{id}", propertyController.Delete).Methods("DELETE")
}
