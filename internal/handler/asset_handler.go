package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yunai-stage-go/internal/assets"
	"yunai-stage-go/pkg/log"
	"yunai-stage-go/pkg/storage"
)

// AssetHandler 暴露素材目录的列表与上传接口。
type AssetHandler struct {
	catalog   *assets.Catalog
	uploadDir string
}

// NewAssetHandler 创建一个新的 AssetHandler。
func NewAssetHandler(catalog *assets.Catalog, uploadDir string) *AssetHandler {
	return &AssetHandler{catalog: catalog, uploadDir: uploadDir}
}

// List 处理 GET /api/assets?type=...&char=...。
func (h *AssetHandler) List(c *gin.Context) {
	typ := c.DefaultQuery("type", "bg")
	if !assets.ValidType(typ) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown asset type: " + typ})
		return
	}
	files := h.catalog.List(typ, c.Query("char"))
	if files == nil {
		files = []assets.File{}
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// Upload 处理 POST /api/upload：multipart 表单上传一份素材，
// 写入本地目录，并在启用 MinIO 时镜像一份到存储桶。
func (h *AssetHandler) Upload(c *gin.Context) {
	typ := c.PostForm("type")
	if !assets.ValidType(typ) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown asset type: " + typ})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	name := filepath.Base(fileHeader.Filename)
	rel := typ + "/" + name
	if char := sanitizeSegment(c.PostForm("char")); typ == "sprites" && char != "" {
		rel = typ + "/" + char + "/" + name
	}

	dst := filepath.Join(h.uploadDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create upload dir failed"})
		return
	}
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		log.Error("保存上传文件失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save file failed"})
		return
	}

	resp := gin.H{"url": "/uploads/" + rel}
	if storage.Enabled() {
		f, err := fileHeader.Open()
		if err == nil {
			defer f.Close()
			if err := storage.PutObject(c.Request.Context(), rel, f, fileHeader.Size,
				fileHeader.Header.Get("Content-Type")); err != nil {
				// 镜像失败不影响本地上传结果
				log.Warnf("镜像素材到对象存储失败: %v", err)
			} else if presigned, err := storage.GetPresignedURL(rel, 24*time.Hour); err == nil {
				resp["presignedUrl"] = presigned
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// sanitizeSegment 去掉路径分隔符，防止表单值逃出上传目录。
func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, "\\", "")
	return strings.ReplaceAll(s, "..", "")
}
