package main

import (
	"flag"
	"log"

	"github.com/decker502/dialogkit/pkg/app"
	"github.com/decker502/dialogkit/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	configPath := flag.String("config", "", "dialog config file (YAML)")
	flag.Parse()

	demo, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		AppName:    "dialogkit_demo",
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("dialogkit - 模态对话框演示")

	if err := ebiten.RunGame(demo); err != nil {
		log.Fatal(err)
	}
}
