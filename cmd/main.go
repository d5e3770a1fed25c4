package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/karei-dev/padmux/internal/api"
	"github.com/karei-dev/padmux/internal/config"
)

func main() {
	// コマンドライン引数の解析
	useApi := flag.Bool("api", false, "観測用APIサーバーを起動します")
	configPath := flag.String("config", "", "設定ファイルのパス (指定しない場合はデフォルトパスを使用)")
	port := flag.Int("port", 8080, "APIサーバーのポート番号")
	flag.Parse()

	// デフォルト設定ファイルパスの設定
	defaultConfigPath := ""
	configDir, err := config.GetDefaultConfigDir()
	if err == nil {
		defaultConfigPath = filepath.Join(configDir, "config.toml")
	}

	// 設定ファイルパスの決定
	cfgPath := defaultConfigPath
	if *configPath != "" {
		cfgPath = *configPath
	}

	// 設定ファイルの読み込み
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("設定ファイルの読み込みに失敗しました: %v\nデフォルト設定を使用します\n", err)
			cfg = config.DefaultConfig()
		} else {
			fmt.Printf("設定ファイルを読み込みました: %s\n", cfgPath)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	// 正規化パイプラインの起動。仮想デバイスを作れなければ続行できない
	service := api.NewPadService(cfg)
	if err := service.Start(); err != nil {
		log.Fatalf("サービスの起動に失敗しました: %v", err)
	}

	// シグナルハンドラの設定
	handleSignals(service)

	// 観測用APIサーバーの起動（任意）
	if *useApi {
		server := api.NewServer(service, *port)
		if err := server.Start(); err != nil {
			log.Fatalf("APIサーバーの起動に失敗しました: %v", err)
		}
	} else {
		// シグナルが来るまで待機
		select {}
	}
}

func handleSignals(service *api.PadService) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("シャットダウンします...")
		service.Stop()
		os.Exit(0)
	}()
}
