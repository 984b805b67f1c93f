package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetCart exposes the current cart lines and running total for rendering.
func (api *APIHandler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	state := api.cart.State()
	count := len(state.Items)
	resp := GenericResponse(requestID, http.StatusOK, "Cart fetched successfully.", &count, state)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// AddCartItem puts one unit of a catalog book into the cart. Adding a book
// already present bumps its line quantity, the line keeps its original price.
func (api *APIHandler) AddCartItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var item CatalogItemRef
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeRequestBody(r, &item)
	if err != nil {
		api.logger.Error("failed to add cart item", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to add the item to the cart", item)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateCartItemRequestBody(&item)
	if err != nil {
		api.logger.Error("failed to add cart item", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to add the item to the cart", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	state := api.cart.Add(r.Context(), item)
	api.logger.Info("success to add cart item",
		zap.String("item.id", item.ID),
		zap.String("request.id", requestID),
		zap.Float64("cart.total", state.Total),
	)
	resp := GenericResponse(requestID, http.StatusOK, "Item added to cart successfully.", nil, state)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateCartItemQuantity replaces the quantity of one cart line. A quantity
// below 1 removes the line. An unknown id leaves the cart unchanged.
func (api *APIHandler) UpdateCartItemQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")
	err := DecodeRequestBody(r, &payload)
	if err != nil {
		api.logger.Error("failed to update cart item quantity", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the cart item quantity", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	state := api.cart.SetQuantity(r.Context(), id, payload.Quantity)
	api.logger.Info("success to update cart item quantity",
		zap.String("item.id", id),
		zap.Int("item.quantity", payload.Quantity),
		zap.String("request.id", requestID),
	)
	resp := GenericResponse(requestID, http.StatusOK, "Cart item quantity updated successfully.", nil, state)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// RemoveCartItem drops one line from the cart. Removing a book which is
// not in the cart is a no-op, not an error.
func (api *APIHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")
	state := api.cart.Remove(r.Context(), id)
	api.logger.Info("success to remove cart item", zap.String("item.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Item removed from cart successfully.", nil, state)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// ClearCart empties the whole cart.
func (api *APIHandler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	state := api.cart.Clear(r.Context())
	api.logger.Info("success to clear cart", zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Cart cleared successfully.", nil, state)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
