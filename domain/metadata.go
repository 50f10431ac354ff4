package domain

import (
	"github.com/x-xyz/nfttransfer/base/ctx"
)

type MetadataAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// TokenMetadata is the ERC-721 metadata JSON document a token URI points to
type TokenMetadata struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Attributes  []MetadataAttribute `json:"attributes"`
}

// MetadataUploaderRepo stores bytes in a content-addressed store and returns the retrieval url
type MetadataUploaderRepo interface {
	Upload(c ctx.Ctx, body []byte) (string, error)
}

type MetadataUseCase interface {
	// Upload returns "" when the document could not be stored, the cause is logged
	Upload(c ctx.Ctx, doc *TokenMetadata) string
}
