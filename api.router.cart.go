package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupCartRoutes injects shopping cart related api endpoints.
func (api *APIHandler) SetupCartRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/cart", m.public(api.GetCart))
	router.POST("/v1/cart/items", m.public(api.AddCartItem))
	router.PUT("/v1/cart/items/:id", m.public(api.UpdateCartItemQuantity))
	router.DELETE("/v1/cart/items/:id", m.public(api.RemoveCartItem))
	router.DELETE("/v1/cart", m.public(api.ClearCart))
	return router
}
