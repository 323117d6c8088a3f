package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/khidmahq/khidma/internal/logger"
	"github.com/khidmahq/khidma/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▄▀ █░█ █ █▀▄ █▀▄▀█ ▄▀█"
	logoText2 = "█░█ █▀█ █ █▄▀ █░▀░█ █▀█"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "khidma",
	Short: "Terminal client for sellers on the Khidma services marketplace",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

khidma is the seller-side terminal client for the Khidma services
marketplace. It walks you through creating a service listing in a
five-step wizard, keeps an auto-saved draft in embedded NATS JetStream
so you can stop and resume at any time, and publishes the finished
listing as markdown.`

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(setupCmd)
}
