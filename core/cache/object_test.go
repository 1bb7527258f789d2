package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"purchase-manager/core/backend"
	"purchase-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestNewObjectStore_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "purchasers").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "purchasers", mock.Anything).Return(nil)

	store, err := NewObjectStore(context.Background(), client, "purchasers", zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, store)
	client.AssertExpectations(t)
}

func TestNewObjectStore_ExistingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "purchasers").Return(true, nil)

	store, err := NewObjectStore(context.Background(), client, "purchasers", zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, store)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestObjectStore_PurchaserInfoRoundTrip(t *testing.T) {
	payload, err := json.Marshal(&backend.PurchaserInfo{Raw: json.RawMessage(`{"subscriber": {}}`)})
	assert.NoError(t, err)

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "purchasers", "purchasers/user-1.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(payload)), nil)

	store := &ObjectStore{client: client, bucket: "purchasers", logger: zap.NewNop()}

	info := store.PurchaserInfo("user-1")
	assert.NotNil(t, info)
	assert.JSONEq(t, `{"subscriber": {}}`, string(info.Raw))
}

func TestObjectStore_PurchaserInfo_Miss(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "purchasers", "purchasers/user-1.json", mock.Anything).
		Return(nil, assert.AnError)

	store := &ObjectStore{client: client, bucket: "purchasers", logger: zap.NewNop()}
	assert.Nil(t, store.PurchaserInfo("user-1"))
}

func TestObjectStore_SetPurchaserInfo(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "purchasers", "purchasers/user-1.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	store := &ObjectStore{client: client, bucket: "purchasers", logger: zap.NewNop()}
	store.SetPurchaserInfo("user-1", &backend.PurchaserInfo{Raw: json.RawMessage(`{}`)})
	client.AssertExpectations(t)
}

func TestObjectStore_UserID(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "purchasers", identityObject, mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("cached-id"))), nil)

	store := &ObjectStore{client: client, bucket: "purchasers", logger: zap.NewNop()}
	assert.Equal(t, "cached-id", store.UserID())
}

func TestObjectStore_WriteFailureIsSwallowed(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "purchasers", identityObject,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	store := &ObjectStore{client: client, bucket: "purchasers", logger: zap.NewNop()}
	store.SetUserID("generated-id")
	client.AssertExpectations(t)
}
