// Package assets 实现素材目录协作方：扫描本地上传目录，产出带
// char/emotion 字段的素材描述，供立绘选择与语音查表消费。
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// File 是一条素材描述，char 按角色分组立绘，emotion 是立绘变体键。
type File struct {
	URL     string `json:"url"`
	Name    string `json:"name,omitempty"`
	Char    string `json:"char,omitempty"`
	Emotion string `json:"emotion,omitempty"`
	Type    string `json:"type,omitempty"`
}

// 支持的素材类别。
var assetTypes = map[string]bool{
	"bg":      true,
	"sprites": true,
	"avatars": true,
	"items":   true,
	"photos":  true,
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// Catalog 扫描根目录下按类别分层的素材文件。
type Catalog struct {
	root string
}

// NewCatalog 创建一个以 root 为上传根目录的素材目录。
func NewCatalog(root string) *Catalog {
	return &Catalog{root: root}
}

// ValidType 报告 typ 是否为受支持的素材类别。
func ValidType(typ string) bool {
	return assetTypes[typ]
}

// List 列出指定类别的素材。sprites 支持按角色分组的子目录与
// "角色-情绪" 命名的平铺文件两种布局；charFilter 非空时只保留该角色。
// 目录不可读时返回空列表而非错误，调用方视结果为空即可。
func (c *Catalog) List(typ, charFilter string) []File {
	if !assetTypes[typ] {
		return nil
	}
	target := filepath.Join(c.root, typ)

	if typ != "sprites" {
		return c.listFlat(typ, target)
	}
	return c.listSprites(target, charFilter)
}

func (c *Catalog) listFlat(typ, target string) []File {
	entries, err := os.ReadDir(target)
	if err != nil {
		return nil
	}
	result := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isImage(e.Name()) {
			continue
		}
		result = append(result, File{
			URL:  "/uploads/" + typ + "/" + e.Name(),
			Name: e.Name(),
			Type: typ,
		})
	}
	return result
}

func (c *Catalog) listSprites(target, charFilter string) []File {
	entries, err := os.ReadDir(target)
	if err != nil {
		return nil
	}
	var result []File
	for _, e := range entries {
		if e.IsDir() {
			// 按角色分组：子目录名即角色，文件名（去扩展名）即情绪
			charID := e.Name()
			if charFilter != "" && charFilter != charID {
				continue
			}
			imgs, err := os.ReadDir(filepath.Join(target, charID))
			if err != nil {
				continue
			}
			for _, img := range imgs {
				if img.IsDir() || !isImage(img.Name()) {
					continue
				}
				result = append(result, File{
					URL:     "/uploads/sprites/" + charID + "/" + img.Name(),
					Name:    img.Name(),
					Char:    charID,
					Emotion: stripExt(img.Name()),
					Type:    "sprites",
				})
			}
			continue
		}

		// 平铺：从文件名推断角色与情绪，支持 '-'、'_' 或空格分隔
		if !isImage(e.Name()) {
			continue
		}
		charID, emo := splitSpriteName(stripExt(e.Name()))
		if charFilter != "" && charFilter != charID {
			continue
		}
		result = append(result, File{
			URL:     "/uploads/sprites/" + e.Name(),
			Name:    e.Name(),
			Char:    charID,
			Emotion: emo,
			Type:    "sprites",
		})
	}
	return result
}

// splitSpriteName 把平铺立绘文件名切成 [角色, 情绪]，切不开时角色取 default。
func splitSpriteName(name string) (string, string) {
	norm := strings.TrimSpace(name)
	for _, sep := range []string{"-", "_", " "} {
		if !strings.Contains(norm, sep) {
			continue
		}
		parts := []string{}
		for _, p := range strings.Split(norm, sep) {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) >= 2 {
			return parts[0], strings.Join(parts[1:], " ")
		}
	}
	return "default", norm
}

func isImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
