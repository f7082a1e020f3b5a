// check_config 校验玩法配置文件
//
// 用法:
//
//	go run ./cmd/check_config [-file data/gameplay.yaml]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/shooterboi/pkg/config"
)

var file = flag.String("file", "data/gameplay.yaml", "要校验的玩法配置文件")

func main() {
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseGameplayConfig(data)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ %s 格式正确\n", *file)
	fmt.Printf("   窗口: %dx%d %q\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	fmt.Printf("   经典: %.0fs，靶子存活 %.1fs\n", cfg.Classic.RoundDuration, cfg.Classic.TargetLifetime)
	fmt.Printf("   歼灭: %.0fs，%d 个靶子\n", cfg.Elimination.RoundDuration, cfg.Elimination.Rows*cfg.Elimination.Columns)
	fmt.Printf("   攻防: %.0fs，剑士从难度 %d 起出现\n", cfg.HitAndDodge.RoundDuration, cfg.HitAndDodge.SwordmanMinLevel)

	if *file == config.GameplayConfigPath && *cfg != *config.DefaultGameplayConfig() {
		fmt.Printf("⚠️  内置配置与 DefaultGameplayConfig() 不一致\n")
	}
}
