package main

import (
	"fmt"
	"log"
	"os"

	"go-jobscrape-server/internal/browser"
	"go-jobscrape-server/internal/config"
)

func main() {
	fmt.Println("🍪 Testing cookie loading...")

	path := config.Load().CookiesPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal("No cookie file: pass a path or set COOKIES_PATH")
	}

	cookies, err := browser.LoadCookies(path)
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//Print first cookie as example
	if len(cookies) > 0 {
		c := cookies[0]
		fmt.Printf("\nExample cookie:\n")
		fmt.Printf("Name: %s\n", c.Name)
		if c.Domain != nil {
			fmt.Printf("Domain: %s\n", *c.Domain)
		}
		fmt.Printf("Secure: %t\n", c.Secure != nil && *c.Secure)
	}
}
