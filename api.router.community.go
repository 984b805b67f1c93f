package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupCommunityRoutes injects personal library and community chat api endpoints.
func (api *APIHandler) SetupCommunityRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/users/:id/library", m.public(api.GetLibrary))
	router.POST("/v1/users/:id/library", m.public(api.SaveToLibrary))
	router.PUT("/v1/users/:id/library/:bookid", m.public(api.UpdateLibraryProgress))
	router.DELETE("/v1/users/:id/library/:bookid", m.public(api.RemoveFromLibrary))
	router.GET("/v1/community/messages", m.public(api.GetCommunityMessages))
	router.POST("/v1/community/messages", m.public(api.PostCommunityMessage))
	return router
}
