package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config はアプリケーション全体の設定を表す構造体。
// 出力契約・リマップテーブル・フィルタルール自体はコードに
// 焼き込まれており、ここでは周辺の挙動だけを調整できる
type Config struct {
	Device  DeviceConfig  `toml:"device"`
	Watcher WatcherConfig `toml:"watcher"`
	Filter  FilterConfig  `toml:"filter"`
}

// DeviceConfig はデバイスファイル周りの設定
type DeviceConfig struct {
	UinputPath string `toml:"uinput_path"` // uinputデバイスファイルのパス
	InputDir   string `toml:"input_dir"`   // 入力デバイスのディレクトリ
}

// WatcherConfig はホットプラグ監視の設定
type WatcherConfig struct {
	RescanInterval time.Duration `toml:"rescan_interval"` // 再スキャンの間隔
	ChannelDepth   int           `toml:"channel_depth"`   // 共有チャネルのバッファ数
}

// FilterConfig はデバイスフィルタの設定
type FilterConfig struct {
	// 組み込みの除外ルールに追加する名前プレフィックス
	BlockedNamePrefixes []string `toml:"blocked_name_prefixes"`
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			UinputPath: "/dev/uinput",
			InputDir:   "/dev/input",
		},
		Watcher: WatcherConfig{
			RescanInterval: time.Second,
			ChannelDepth:   256,
		},
		Filter: FilterConfig{
			BlockedNamePrefixes: nil,
		},
	}
}

// GetDefaultConfigDir はデフォルトの設定ディレクトリを返す
func GetDefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "padmux"), nil
}

// LoadConfig は設定ファイルから設定を読み込む
func LoadConfig(configPath string) (*Config, error) {
	// デフォルト設定を用意
	config := DefaultConfig()

	// ファイルが存在しない場合はデフォルト設定を保存して返す
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveConfig(configPath, config); err != nil {
			return config, err
		}
		return config, nil
	}

	// 設定ファイルの読み込み
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig は設定をTOMLファイルに保存する
func SaveConfig(configPath string, config *Config) error {
	// 設定ディレクトリの作成
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// ファイルを開く（なければ作成）
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// TOML形式でエンコードして書き込み
	encoder := toml.NewEncoder(f)
	return encoder.Encode(config)
}
