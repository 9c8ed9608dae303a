// Command streaks-cli prints contribution streaks and renders badges from the terminal
package main

import (
	"fmt"
	"os"

	gh "streaks/internal/adapters/ingest/github"
	"streaks/internal/modkit"
	"streaks/internal/modkit/module"
	"streaks/internal/platform/config"
	"streaks/internal/platform/logger"
	"streaks/internal/services/api/streak/domain"
	streakmod "streaks/internal/services/api/streak/module"
)

func main() {
	// logs go to stderr so stdout stays pipeable
	opt := logger.FromEnv("warn")
	opt.Writer = os.Stderr
	logger.Init(opt)

	root := newRootCmd(servicePort, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// servicePort builds the streak module against live GitHub and pulls its service port
func servicePort() domain.ServicePort {
	root := config.New()
	client := gh.NewClient(gh.FromConfig(root.Prefix("GITHUB_"), nil))

	m := streakmod.New(modkit.Deps{
		Log:    *logger.Get(),
		Cfg:    root,
		GitHub: gh.NewCollector(client),
	})
	return module.MustPortsOf[streakmod.Ports](m).Service
}
