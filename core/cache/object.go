package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"purchase-manager/core/backend"
	"purchase-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const identityObject = "identity/app_user_id"

// ObjectStore persists the cache as objects in a storage bucket. It serves
// server-side embeddings of the library where a shared bucket is the natural
// persistence medium.
type ObjectStore struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewObjectStore ensures the bucket exists and returns an object-backed store.
func NewObjectStore(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) (*ObjectStore, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &ObjectStore{client: client, bucket: bucket, logger: logger}, nil
}

func (s *ObjectStore) PurchaserInfo(userID string) *backend.PurchaserInfo {
	value := s.get(purchaserObject(userID))
	if value == nil {
		return nil
	}

	var info backend.PurchaserInfo
	if err := json.Unmarshal(value, &info); err != nil {
		s.logger.Warn("Discarding undecodable cached purchaser info",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return &info
}

func (s *ObjectStore) SetPurchaserInfo(userID string, info *backend.PurchaserInfo) {
	value, err := json.Marshal(info)
	if err != nil {
		s.logger.Warn("Failed to encode purchaser info for caching", zap.Error(err))
		return
	}
	s.set(purchaserObject(userID), value)
}

func (s *ObjectStore) UserID() string {
	return string(s.get(identityObject))
}

func (s *ObjectStore) SetUserID(id string) {
	s.set(identityObject, []byte(id))
}

func (s *ObjectStore) get(name string) []byte {
	obj, err := s.client.GetObject(context.Background(), s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Warn("Cache read failed", zap.String("object", name), zap.Error(err))
		return nil
	}
	defer obj.Close()

	// Minio reports missing objects on first read, not on GetObject.
	value, err := io.ReadAll(obj)
	if err != nil {
		return nil
	}
	return value
}

func (s *ObjectStore) set(name string, value []byte) {
	_, err := s.client.PutObject(context.Background(), s.bucket, name,
		bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		s.logger.Warn("Cache write failed", zap.String("object", name), zap.Error(err))
	}
}

func purchaserObject(userID string) string {
	return "purchasers/" + userID + ".json"
}
