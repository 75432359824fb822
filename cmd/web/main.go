package main

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacebeat/internal/config"
	"github.com/tomz197/spacebeat/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "web")
	if err != nil {
		log.Fatal("Failed to create logger", "err", err)
	}

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", cfg.Web.SSHDisplayHost)
	page = strings.ReplaceAll(page, "{{.SSHPort}}", cfg.SSH.Port)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := cfg.WebAddr()
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}
