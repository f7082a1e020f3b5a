package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/app"
	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/embedded"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/logger"
)

var (
	verbose    = flag.Bool("verbose", false, "输出 Debug 级别日志")
	mode       = flag.String("mode", "", "跳过菜单直接开始对局：classic、elimination、hit_and_dodge")
	difficulty = flag.String("difficulty", "easy", "快速开始的难度：easy、medium、hard")
)

func main() {
	flag.Parse()

	if err := logger.Init(*verbose); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Named("main")

	embedded.Init(dataFS)

	quick, err := parseQuickStart(*mode, *difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	gameplay, err := config.LoadGameplayConfig(config.GameplayConfigPath)
	if err != nil {
		log.Fatal("failed to load gameplay config", zap.Error(err))
	}

	a, err := app.NewApp(context.Background(), app.Config{
		Gameplay:   gameplay,
		Storage:    game.OpenStorage(game.AppName),
		QuickStart: quick,
	})
	if err != nil {
		log.Fatal("failed to create app", zap.Error(err))
	}

	ebiten.SetWindowSize(gameplay.Window.Width, gameplay.Window.Height)
	ebiten.SetWindowTitle(gameplay.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(a)
	a.Flush()
	if err != nil {
		log.Fatal("game loop stopped", zap.Error(err))
	}
}

// parseQuickStart 解析命令行的快速开始参数，mode 为空时返回 nil
func parseQuickStart(mode, difficulty string) (*app.QuickStart, error) {
	if mode == "" {
		return nil, nil
	}
	m, err := game.ParseGameMode(mode)
	if err != nil {
		return nil, fmt.Errorf("--mode: %w", err)
	}
	d, err := game.ParseDifficulty(difficulty)
	if err != nil {
		return nil, fmt.Errorf("--difficulty: %w", err)
	}
	return &app.QuickStart{Mode: m, Difficulty: d}, nil
}
