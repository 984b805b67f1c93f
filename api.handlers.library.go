package main

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetLibrary lists every book saved in the user personal library.
func (api *APIHandler) GetLibrary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := ps.ByName("id")
	entries, err := api.libraryService.List(r.Context(), userID)
	if err != nil {
		api.logger.Error("failed to get library", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the library", entries)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	total := len(entries)
	resp := GenericResponse(requestID, http.StatusOK, "Library fetched successfully.", &total, entries)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// SaveToLibrary adds a book to the user personal library.
func (api *APIHandler) SaveToLibrary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var entry LibraryEntry
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeRequestBody(r, &entry)
	if err != nil {
		api.logger.Error("failed to save to library", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to save the book to the library", entry)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	entry.UserID = ps.ByName("id")

	err = ValidateLibraryEntryRequestBody(&entry)
	if err != nil {
		api.logger.Error("failed to save to library", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to save the book to the library", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	entry, err = api.libraryService.Save(r.Context(), entry)
	if err != nil {
		api.logger.Error("failed to save to library", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to save the book to the library", entry)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to save to library",
		zap.String("user.id", entry.UserID),
		zap.String("book.id", entry.BookID),
		zap.String("request.id", requestID),
	)
	resp := GenericResponse(requestID, http.StatusCreated, "Book saved to library successfully.", nil, entry)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateLibraryProgress records the reading progress of a saved book.
func (api *APIHandler) UpdateLibraryProgress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Progress int `json:"progress"`
	}
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := ps.ByName("id")
	bookID := ps.ByName("bookid")
	err := DecodeRequestBody(r, &payload)
	if err != nil {
		api.logger.Error("failed to update library progress", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the reading progress", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if payload.Progress < 0 || payload.Progress > 100 {
		api.logger.Error("invalid reading progress", zap.Int("progress", payload.Progress), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "progress must be between 0 and 100", strconv.Itoa(payload.Progress))
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	entry, err := api.libraryService.UpdateProgress(r.Context(), userID, bookID, payload.Progress)
	if err == ErrLibraryEntryNotFound {
		api.logger.Error("library entry does not exist", zap.String("book.id", bookID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book is not in the library", entry)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update library progress", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to update the reading progress", entry)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	resp := GenericResponse(requestID, http.StatusOK, "Reading progress updated successfully.", nil, entry)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// RemoveFromLibrary deletes a saved book from the user personal library.
func (api *APIHandler) RemoveFromLibrary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := ps.ByName("id")
	bookID := ps.ByName("bookid")
	err := api.libraryService.Remove(r.Context(), userID, bookID)
	if err == ErrLibraryEntryNotFound {
		api.logger.Error("library entry does not exist", zap.String("book.id", bookID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book is not in the library", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to remove from library", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to remove the book from the library", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to remove from library",
		zap.String("user.id", userID),
		zap.String("book.id", bookID),
		zap.String("request.id", requestID),
	)
	resp := GenericResponse(requestID, http.StatusOK, "Book removed from library successfully.", nil, EmptyData)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
