package pinata

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/x-xyz/nfttransfer/base/ctx"
)

const (
	DefaultEndpoint = "https://api.pinata.cloud"
	pinJsonPath     = "/pinning/pinJSONToIPFS"
)

type Cfg struct {
	ApiKey    string
	ApiSecret string
	// Endpoint defaults to DefaultEndpoint
	Endpoint   string
	HttpClient *http.Client
}

type pinataImpl struct {
	apiKey    string
	apiSecret string
	endpoint  string
	client    *http.Client
}

func New(cfg *Cfg) Service {
	im := &pinataImpl{
		apiKey:    cfg.ApiKey,
		apiSecret: cfg.ApiSecret,
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		client:    cfg.HttpClient,
	}
	if im.endpoint == "" {
		im.endpoint = DefaultEndpoint
	}
	if im.client == nil {
		im.client = http.DefaultClient
	}
	return im
}

func (im *pinataImpl) PinJson(c ctx.Ctx, value interface{}, opts ...Option) (string, error) {
	body, err := json.Marshal(NewPinRequest(value, opts...))
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return "", err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, im.endpoint+pinJsonPath, bytes.NewBuffer(body))
	if err != nil {
		c.WithField("err", err).Error("http.NewRequest failed")
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("pinata_api_key", im.apiKey)
	req.Header.Set("pinata_secret_api_key", im.apiSecret)

	resp, err := im.client.Do(req)
	if err != nil {
		c.WithField("err", err).Error("client.Do failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		c.WithFields(map[string]interface{}{
			"status":    resp.StatusCode,
			"errorBody": string(errorBody),
		}).Error("Request failed")
		return "", ErrRequestFailed
	}

	type payload struct {
		IpfsHash string `json:"IpfsHash"`
	}

	p := &payload{}

	if err := json.NewDecoder(resp.Body).Decode(p); err != nil {
		c.WithField("err", err).Error("json.NewDecoder.Decode failed")
		return "", err
	}

	return p.IpfsHash, nil
}
