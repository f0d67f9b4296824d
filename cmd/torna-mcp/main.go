package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/li7hai26/torna-mcp/internal/config"
	. "github.com/li7hai26/torna-mcp/internal/logging"
	"github.com/li7hai26/torna-mcp/internal/tools"
	"github.com/li7hai26/torna-mcp/internal/torna"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("torna-mcp %s\n", version)
			return
		case "init":
			Init(nil)
			path := config.DefaultPath()
			if err := config.WriteExample(path); err != nil {
				L_fatal("failed to write example config: %v", err)
			}
			fmt.Printf("wrote %s\n", path)
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		Init(nil)
		L_fatal("failed to load config: %v", err)
	}

	Init(&Config{
		Level:      ParseLevel(cfg.Logging.Level),
		ShowCaller: cfg.Logging.ShowCaller,
	})

	L_info("torna-mcp %s starting", version)
	L_object("config", cfg.Redacted())

	client, err := torna.NewClient(cfg.Torna.URL, cfg.Torna.Timeout)
	if err != nil {
		L_fatal("failed to create torna client: %v", err)
	}

	registry := tools.NewRegistry(client)

	s := server.NewMCPServer("torna_mcp", version)
	registry.Install(s)

	L_info("torna-mcp ready", "url", client.BaseURL(), "timeout", client.Timeout().String(), "tokens", len(cfg.Torna.Tokens), "tools", registry.Count())

	if err := server.ServeStdio(s); err != nil {
		L_fatal("server error: %v", err)
	}

	L_info("torna-mcp shutting down")
}
