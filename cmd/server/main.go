// Package main 是游戏服务器的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"yunai-stage-go/internal/assets"
	"yunai-stage-go/internal/config"
	"yunai-stage-go/internal/handler"
	"yunai-stage-go/internal/middleware"
	"yunai-stage-go/pkg/llm"
	"yunai-stage-go/pkg/log"
	"yunai-stage-go/pkg/storage"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 可选的对象存储镜像
	if cfg.MinIO.Endpoint != "" {
		storage.InitMinIO(cfg.MinIO)
	}

	// 4. 依赖注入
	llmClient := llm.NewClient(cfg.LLM)
	catalog := assets.NewCatalog(cfg.Assets.UploadDir)
	chatHandler := handler.NewChatHandler(llmClient, cfg.Chat, cfg.LLM.APIKey)
	assetHandler := handler.NewAssetHandler(catalog, cfg.Assets.UploadDir)

	if cfg.LLM.APIKey == "" {
		log.Warnf("未配置上游凭证（DEEPSEEK_API_KEY），自由聊天将返回错误事件")
	}

	// 5. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 6. 注册路由
	r.POST("/api/ai", chatHandler.HandleSSE)
	r.GET("/chat", chatHandler.HandleWS)
	r.GET("/api/assets", assetHandler.List)
	r.POST("/api/upload", assetHandler.Upload)
	r.Static("/uploads", cfg.Assets.UploadDir)

	// 7. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
