package main

import (
	"fmt"
	"os"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/engine"
	"github.com/uhaszYsz/mmomicro/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "issue":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admintoken issue <subject> [ttl] [config]")
			return
		}
		ttl := time.Hour
		if len(os.Args) >= 4 {
			d, err := time.ParseDuration(os.Args[3])
			if err != nil {
				fmt.Printf("Invalid ttl: %v\n", err)
				os.Exit(1)
			}
			ttl = d
		}
		configPath := ""
		if len(os.Args) >= 5 {
			configPath = os.Args[4]
		}

		// Секрет берется так же, как его берет сервер: файл, .env и MMO_ADMIN_SECRET
		cfg, err := engine.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			os.Exit(1)
		}
		if cfg.AdminSecret == "" {
			fmt.Println("admin_secret is empty, set MMO_ADMIN_SECRET")
			os.Exit(1)
		}

		tok, err := server.IssueAdminToken([]byte(cfg.AdminSecret), os.Args[2], ttl)
		if err != nil {
			fmt.Printf("Sign error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(tok)
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Admin Token - выпуск JWT для админского API
Commands:
  issue <subject> [ttl] [config]  - подписать токен (ttl по умолчанию 1h)`)
}
