package main

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetCommunityMessages serves the most recent community messages,
// oldest first. The optional limit query param caps the page size.
func (api *APIHandler) GetCommunityMessages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	messages, err := api.chatService.Recent(r.Context(), limit)
	if err != nil {
		api.logger.Error("failed to get community messages", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the community messages", messages)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	total := len(messages)
	resp := GenericResponse(requestID, http.StatusOK, "Community messages fetched successfully.", &total, messages)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// PostCommunityMessage appends one message to the community feed.
func (api *APIHandler) PostCommunityMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var message ChatMessage
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeRequestBody(r, &message)
	if err != nil {
		api.logger.Error("failed to post community message", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to post the message", message)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateChatMessageRequestBody(&message)
	if err != nil {
		api.logger.Error("failed to post community message", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to post the message", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	message, err = api.chatService.Post(r.Context(), message)
	if err != nil {
		api.logger.Error("failed to post community message", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to post the message", message)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to post community message",
		zap.String("message.id", message.ID),
		zap.String("request.id", requestID),
	)
	resp := GenericResponse(requestID, http.StatusCreated, "Message posted successfully.", nil, message)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
