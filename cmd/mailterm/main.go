package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-client/internal/api"
	"github.com/nhle/mail-client/internal/app"
	"github.com/nhle/mail-client/internal/credential"
	"github.com/nhle/mail-client/internal/model"
	"github.com/nhle/mail-client/internal/session"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal is owned by the UI; log lines either go to a debug
	// file or nowhere.
	if cfg.Debug {
		logPath := filepath.Join(filepath.Dir(model.DefaultConfigPath()), "debug.log")
		if f, err := tea.LogToFile(logPath, "mailterm"); err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	ring, err := credential.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open credential store: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(ring)
	if err := sess.Load(); err != nil {
		// A broken credential store degrades to a signed-out start.
		log.Printf("restoring session: %v", err)
	}

	client := api.NewClient(
		cfg.Server.BaseURL,
		sess,
		time.Duration(cfg.Server.TimeoutSec)*time.Second,
	)

	p := tea.NewProgram(app.New(sess, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}
