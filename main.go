package main

import (
	"log"
)

// Build infos injected at compile time.
var (
	GitCommit string
	GitTag    string
	BuildTime string
)

// @title        Cloud Bookstore API
// @version      1.0
// @description  Consumer digital bookstore backend with catalog browsing, shopping cart, personal library and community chat.

// @contact.name   API Support
// @contact.email  support@cloud-bookstore.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /v1
func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialized: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
