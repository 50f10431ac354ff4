package repository

import (
	"bytes"
	"io"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
)

var ErrInvalidJsonFormat = xerrors.New("invalid JSON form")

const defaultUploadTimeout = 10 * time.Second

type CloudStorageUploaderRepoCfg struct {
	Timeout    time.Duration
	Client     *storage.Client
	BucketName string
	Url        string
}

type cloudStorageUploaderRepo struct {
	client     *storage.Client
	bucketName string
	ctxTimeout time.Duration
	baseUrl    *url.URL
}

// NewCloudStorageUploaderRepo writes documents to a bucket under the keccak256 of their bytes
func NewCloudStorageUploaderRepo(cfg *CloudStorageUploaderRepoCfg) (domain.MetadataUploaderRepo, error) {
	baseUrl, err := url.Parse(cfg.Url)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(baseUrl.Path, "/") {
		baseUrl.Path += "/"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	return &cloudStorageUploaderRepo{
		client:     cfg.Client,
		bucketName: cfg.BucketName,
		ctxTimeout: timeout,
		baseUrl:    baseUrl,
	}, nil
}

func objectName(body []byte) string {
	return crypto.Keccak256Hash(body).Hex()
}

func (r *cloudStorageUploaderRepo) Upload(c bCtx.Ctx, body []byte) (string, error) {
	name := objectName(body)
	contentPath, err := url.Parse(name)
	if err != nil {
		return "", err
	}

	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	w := r.client.Bucket(r.bucketName).Object(name).NewWriter(ctx)
	w.ObjectAttrs.ContentType = "application/json"
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		ctx.WithFields(log.Fields{
			"object": name,
			"err":    err,
		}).Error("failed to copy")
		return "", err
	}
	if err := w.Close(); err != nil {
		ctx.WithFields(log.Fields{
			"object": name,
			"err":    err,
		}).Error("failed to close writer")
		return "", err
	}
	return r.baseUrl.ResolveReference(contentPath).String(), nil
}
