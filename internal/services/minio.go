package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Uploader pousse les images d'articles vers MinIO et renvoie leur URL
// publique. Un Uploader nil désactive l'upload (MinIO non configuré).
type Uploader struct {
	client *minio.Client
	bucket string
}

func NewUploader(client *minio.Client, bucket string) *Uploader {
	if client == nil {
		return nil
	}
	return &Uploader{client: client, bucket: bucket}
}

// UploadItemImage stocke le fichier sous un nom aléatoire (pas de collision
// entre deux vendeurs qui envoient "pomme.jpg").
func (u *Uploader) UploadItemImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if u == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := uuid.New().String() + filepath.Ext(file.Filename)
	_, err = u.client.PutObject(ctx, u.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), u.bucket, objectName)
	return url, nil
}
