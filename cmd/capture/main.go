// Command capture pushes a receipt photo at a work order from the command
// line: shrink the image, show where the preview landed, then upload on
// confirmation. Handy when the captain's phone photos come in over email
// instead of the app.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/baysidepv/charter-api/internal/capture"
)

func main() {
	var (
		apiURL   = flag.String("api", "http://localhost:8080", "charter API base URL")
		token    = flag.String("token", os.Getenv("CHARTER_TOKEN"), "bearer token (defaults to CHARTER_TOKEN)")
		orderID  = flag.Uint("order", 0, "work order ID to attach the receipt to")
		filePath = flag.String("file", "", "path to the receipt image")
		category = flag.String("category", "general", "expense category (fuel, ice, beverages, misc, general)")
		yes      = flag.Bool("yes", false, "skip the confirmation prompt")
	)
	flag.Parse()

	if *orderID == 0 || *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *token == "" {
		log.Fatal("no token: pass -token or set CHARTER_TOKEN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := capture.NewClient(*apiURL, *token, uint(*orderID))
	manager := capture.NewManager()
	session := manager.Begin(client, "")
	defer manager.End(session)

	preview, err := session.Capture(ctx, &capture.FileSource{Path: *filePath})
	if err != nil {
		log.Fatalf("capture failed: %v", err)
	}

	frame := preview.Frame()
	fmt.Printf("Prepared %s (%d KB, %s), preview at %s\n",
		frame.Name, len(frame.Data)/1024, frame.MIME, preview.Path())

	if !*yes && !confirm() {
		if err := session.Reject(); err != nil {
			log.Fatalf("reject failed: %v", err)
		}
		fmt.Println("Discarded.")
		return
	}

	if err := session.Confirm(ctx, *category); err != nil {
		log.Fatalf("upload failed: %v", err)
	}
	fmt.Printf("Uploaded receipt to work order %d as %s\n", *orderID, *category)
}

func confirm() bool {
	fmt.Print("Upload? [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
