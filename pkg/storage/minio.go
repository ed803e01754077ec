// Package storage 提供与对象存储服务（如 MinIO）交互的功能。
package storage

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"yunai-stage-go/internal/config"
	"yunai-stage-go/pkg/log"
)

// MinioClient 是一个全局的 MinIO 客户端实例，未启用镜像存储时为 nil。
var MinioClient *minio.Client

var bucket string

// Enabled 报告镜像存储是否已初始化。
func Enabled() bool {
	return MinioClient != nil
}

// InitMinIO 初始化 MinIO 客户端并确保指定的存储桶存在。
func InitMinIO(cfg config.MinIOConfig) {
	var err error

	MinioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}
	bucket = cfg.BucketName

	log.Info("MinIO 客户端初始化成功")

	ctx := context.Background()
	exists, err := MinioClient.BucketExists(ctx, bucket)
	if err != nil {
		log.Fatal("检查 MinIO 存储桶失败", err)
	}

	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", bucket)
		if err := MinioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("创建 MinIO 存储桶失败", err)
		}
		log.Infof("存储桶 '%s' 创建成功", bucket)
	}
}

// PutObject 把一份素材镜像写入存储桶。
func PutObject(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	_, err := MinioClient.PutObject(ctx, bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// GetPresignedURL generates a presigned URL for a given object.
func GetPresignedURL(objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := MinioClient.PresignedGetObject(context.Background(), bucket, objectName, expiry, nil)
	if err != nil {
		log.Errorf("Error generating presigned URL: %s", err)
		return "", err
	}
	return presignedURL.String(), nil
}
