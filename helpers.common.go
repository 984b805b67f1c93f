package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
)

var (
	ErrBookNotFound         = errors.New("book not found")
	ErrLibraryEntryNotFound = errors.New("library entry not found")
	ErrNoCartSnapshot       = errors.New("no cart snapshot available")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	BookIDPrefix         string     = "b"
	RequestIDPrefix      string     = "r"
	MessageIDPrefix      string     = "m"
	ContextRequestID     ContextKey = "request.id"
	ContextRequestNumber ContextKey = "request.number"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(ContextRequestNumber); val != nil {
		return val.(uint64)
	}
	return 0
}

// DecodeRequestBody reads a json request body into the given target.
func DecodeRequestBody(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return errors.New("invalid empty request body")
	}
	return json.NewDecoder(r.Body).Decode(target)
}

// ValidateCreateBookRequestBody is a helper function to check if the content of a book creation request is valid.
func ValidateCreateBookRequestBody(book *Book) error {
	if len(book.Title) == 0 {
		return missingFieldError("title")
	}

	if len(book.Author) == 0 {
		return missingFieldError("author")
	}

	if book.Price < 0 {
		return errors.New("price must not be negative")
	}

	return nil
}

// ValidateUpdateBookRequestBody is a helper function to check if the content of a book update request is valid.
func ValidateUpdateBookRequestBody(book *Book) error {
	if err := ValidateCreateBookRequestBody(book); err != nil {
		return err
	}

	if len(book.ID) == 0 {
		return missingFieldError("id")
	}

	if len(book.CreatedAt) == 0 {
		return missingFieldError("createdAt")
	}

	return nil
}

// ValidateCartItemRequestBody checks the payload of an add-to-cart request.
func ValidateCartItemRequestBody(item *CatalogItemRef) error {
	if len(item.ID) == 0 {
		return missingFieldError("id")
	}

	if len(item.Title) == 0 {
		return missingFieldError("title")
	}

	if item.Price < 0 {
		return errors.New("price must not be negative")
	}

	return nil
}

// ValidateChatMessageRequestBody checks the payload of a community message post.
func ValidateChatMessageRequestBody(message *ChatMessage) error {
	if len(message.Username) == 0 {
		return missingFieldError("username")
	}

	if len(strings.TrimSpace(message.Content)) == 0 {
		return missingFieldError("content")
	}

	return nil
}

// ValidateLibraryEntryRequestBody checks the payload of a save-to-library request.
func ValidateLibraryEntryRequestBody(entry *LibraryEntry) error {
	if len(entry.BookID) == 0 {
		return missingFieldError("bookId")
	}

	if entry.Progress < 0 || entry.Progress > 100 {
		return errors.New("progress must be between 0 and 100")
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
