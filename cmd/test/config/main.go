package main

import (
	"fmt"
	"log"

	"go-jobscrape-server/internal/config"

	"gopkg.in/yaml.v3"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")

	//never print the token itself
	if cfg.TelegramToken != "" {
		cfg.TelegramToken = "***"
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		log.Fatalf("Failed to render config: %v", err)
	}
	fmt.Print(string(out))
	fmt.Printf("   Headless: %t\n", cfg.IsHeadless())
	fmt.Printf("   Telegram enabled: %t\n", cfg.TelegramEnabled())
}
