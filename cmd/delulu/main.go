// delulu analyzes exported WhatsApp chats from the command line and can
// serve the same analysis over HTTP.
package main

import (
	"os"

	"github.com/markdave123-py/delulu-meter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
