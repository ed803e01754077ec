package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultCoins 是首次进入游戏时的初始金币。
const DefaultCoins = 100

// SaveData 是持久化到客户端本地的游戏状态。
// 立绘/背景/头像不落盘，每次启动从素材目录重新计算。
type SaveData struct {
	Coins     int            `json:"coins"`
	Inventory map[string]int `json:"inventory"`
	Affection int            `json:"affection"`
}

// SaveFile 以 JSON 文件承载客户端本地存档。
type SaveFile struct {
	path string
}

// NewSaveFile 创建一个落盘到 path 的存档。
func NewSaveFile(path string) *SaveFile {
	return &SaveFile{path: path}
}

// Load 读取存档；文件不存在时返回初始状态，解析失败视为损坏并报错。
func (s *SaveFile) Load() (SaveData, error) {
	data := SaveData{Coins: DefaultCoins, Inventory: map[string]int{}}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return data, nil
		}
		return data, fmt.Errorf("failed to read save file: %w", err)
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return data, fmt.Errorf("failed to parse save file: %w", err)
	}
	if data.Inventory == nil {
		data.Inventory = map[string]int{}
	}
	data.Affection = clampAffection(data.Affection)
	return data, nil
}

// Save 原子化写出存档：先写临时文件再重命名。
func (s *SaveFile) Save(data SaveData) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create save dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
