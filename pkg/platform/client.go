package platform

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"custody_wallet_back/internal/wallet"
	"custody_wallet_back/models"
)

const (
	DefaultBaseURL = "https://api.cdp.coinbase.com/platform"

	statusComplete = "complete"
	statusFailed   = "failed"
	pageLimit      = 100
)

type Config struct {
	BaseURL        string
	APIKeyName     string
	APIKeySecret   string
	RequestTimeout time.Duration
	AwaitInterval  time.Duration
	AwaitTimeout   time.Duration
}

// Client talks to the wallet platform REST API. It holds no per-wallet state;
// seeds only travel inside the SignedWallet handles passed to it.
type Client struct {
	http   *resty.Client
	signer *tokenSigner
	host   string
	base   string
	cfg    Config
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.AwaitInterval <= 0 {
		cfg.AwaitInterval = 2 * time.Second
	}

	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse platform url")
	}
	signer, err := newTokenSigner(cfg.APIKeyName, cfg.APIKeySecret)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(u.String()).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		signer: signer,
		host:   u.Host,
		base:   u.Path,
		cfg:    cfg,
	}, nil
}

func (c *Client) CreateWallet(ctx context.Context, networkID string) (models.NewWallet, error) {
	seed, err := wallet.NewSeed()
	if err != nil {
		return models.NewWallet{}, err
	}
	key, err := wallet.DeriveAddress(seed, 0)
	if err != nil {
		return models.NewWallet{}, err
	}

	var body createWalletBody
	body.Wallet.NetworkID = networkID
	body.Wallet.UseServerSigner = true

	var created apiWallet
	if err := c.do(ctx, http.MethodPost, "/v1/wallets", body, &created); err != nil {
		return models.NewWallet{}, platformError(err, "create wallet")
	}

	var addr apiAddress
	path := "/v1/wallets/" + url.PathEscape(created.ID) + "/addresses"
	if err := c.do(ctx, http.MethodPost, path, createAddressBody{PublicKey: key.PublicKey, AddressIndex: key.Index}, &addr); err != nil {
		return models.NewWallet{}, platformError(err, "create default address")
	}

	logrus.WithFields(logrus.Fields{
		"wallet_id":  created.ID,
		"address_id": addr.AddressID,
		"network_id": created.NetworkID,
	}).Info("platform wallet created")

	w := created.model()
	w.DefaultAddressID = addr.AddressID
	return models.NewWallet{Wallet: w, Seed: seed}, nil
}

func (c *Client) FetchWallet(ctx context.Context, walletID string) (models.Wallet, error) {
	var w apiWallet
	if err := c.do(ctx, http.MethodGet, "/v1/wallets/"+url.PathEscape(walletID), nil, &w); err != nil {
		if isNotFound(err) {
			return models.Wallet{}, errors.Wrapf(models.ErrWalletNotFound, "wallet %s", walletID)
		}
		return models.Wallet{}, platformError(err, "fetch wallet")
	}
	return w.model(), nil
}

func (c *Client) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	items, err := listAll[apiWallet](ctx, c, "/v1/wallets")
	if err != nil {
		return nil, platformError(err, "list wallets")
	}
	out := make([]models.Wallet, 0, len(items))
	for _, w := range items {
		out = append(out, w.model())
	}
	return out, nil
}

func (c *Client) ListAddresses(ctx context.Context, walletID string) ([]models.Address, error) {
	items, err := listAll[apiAddress](ctx, c, "/v1/wallets/"+url.PathEscape(walletID)+"/addresses")
	if err != nil {
		if isNotFound(err) {
			return nil, errors.Wrapf(models.ErrWalletNotFound, "wallet %s", walletID)
		}
		return nil, platformError(err, "list addresses")
	}
	out := make([]models.Address, 0, len(items))
	for _, a := range items {
		out = append(out, a.model())
	}
	return out, nil
}

func (c *Client) ListWalletBalances(ctx context.Context, walletID string) (models.Balances, error) {
	return c.balances(ctx, "/v1/wallets/"+url.PathEscape(walletID)+"/balances")
}

func (c *Client) ListAddressBalances(ctx context.Context, walletID, addressID string) (models.Balances, error) {
	return c.balances(ctx, addressPath(walletID, addressID)+"/balances")
}

func (c *Client) balances(ctx context.Context, path string) (models.Balances, error) {
	items, err := listAll[apiBalance](ctx, c, path)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.Wrap(models.ErrWalletNotFound, path)
		}
		return nil, platformError(err, "list balances")
	}
	out := make(models.Balances, len(items))
	for _, b := range items {
		atomic, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return nil, errors.Wrapf(models.ErrPlatform, "bad balance amount %q for %s", b.Amount, b.Asset.AssetID)
		}
		out[b.Asset.AssetID] = atomic.Shift(-b.Asset.Decimals)
	}
	return out, nil
}

// AttachSeed checks that seed derives the wallet's default address and returns
// a handle that may originate transfers.
func (c *Client) AttachSeed(_ context.Context, w models.Wallet, seed models.Seed) (*models.SignedWallet, error) {
	if w.DefaultAddressID != "" {
		if err := wallet.VerifyAddress(seed, 0, w.DefaultAddressID); err != nil {
			return nil, errors.Wrapf(err, "wallet %s", w.ID)
		}
	}
	return &models.SignedWallet{Wallet: w, Seed: seed}, nil
}

func (c *Client) CreateTransfer(ctx context.Context, signed *models.SignedWallet, from models.SigningContext, t models.ValidTransfer) (models.TransferTicket, error) {
	if signed == nil || signed.Seed == "" {
		return models.TransferTicket{}, errors.Wrap(models.ErrSubmission, "wallet handle has no seed attached")
	}

	addressID := signed.DefaultAddressID
	if a, ok := from.(models.AddressLevel); ok {
		addressID = a.AddressID
	}
	if addressID == "" {
		return models.TransferTicket{}, errors.Wrapf(models.ErrAddressNotFound, "wallet %s has no default address", signed.ID)
	}

	asset, err := c.asset(ctx, signed.NetworkID, t.AssetID)
	if err != nil {
		return models.TransferTicket{}, ClassifySubmissionError(err)
	}
	atomic := t.Amount.Shift(asset.Decimals)
	if !atomic.IsInteger() {
		return models.TransferTicket{}, errors.Wrapf(models.ErrSubmission,
			"amount %s has more than %d decimals for %s", t.Amount, asset.Decimals, t.AssetID)
	}

	body := createTransferBody{
		Amount:      atomic.String(),
		NetworkID:   signed.NetworkID,
		AssetID:     t.AssetID,
		Destination: t.Destination,
	}
	var created apiTransfer
	if err := c.do(ctx, http.MethodPost, addressPath(signed.ID, addressID)+"/transfers", body, &created); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return models.TransferTicket{}, ClassifySubmissionError(err)
		}
		// No answer from the platform: the transfer may exist anyway.
		return models.TransferTicket{AddressID: addressID}, errors.Wrapf(models.ErrOutcomeUnknown, "create transfer: %v", err)
	}

	return models.TransferTicket{
		TransferID: created.TransferID,
		WalletID:   signed.ID,
		AddressID:  addressID,
	}, nil
}

func (c *Client) asset(ctx context.Context, networkID, assetID string) (apiAsset, error) {
	var a apiAsset
	path := "/v1/networks/" + url.PathEscape(networkID) + "/assets/" + url.PathEscape(assetID)
	err := c.do(ctx, http.MethodGet, path, nil, &a)
	return a, err
}

// AwaitTransfer polls until the transfer is complete or failed. With a zero
// AwaitTimeout it waits as long as ctx allows; a positive AwaitTimeout is an
// operator cap on top of that. Running out of time or ctx yields
// models.ErrOutcomeUnknown since the transfer may still land.
func (c *Client) AwaitTransfer(ctx context.Context, ticket models.TransferTicket) (models.TransferState, error) {
	if c.cfg.AwaitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.AwaitTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.cfg.AwaitInterval)
	defer ticker.Stop()

	path := addressPath(ticket.WalletID, ticket.AddressID) + "/transfers/" + url.PathEscape(ticket.TransferID)
	for {
		var t apiTransfer
		if err := c.do(ctx, http.MethodGet, path, nil, &t); err != nil {
			return models.TransferState{}, errors.Wrapf(models.ErrOutcomeUnknown, "transfer %s: %v", ticket.TransferID, err)
		}
		if t.Status == statusComplete || t.Status == statusFailed {
			return models.TransferState{
				Status:          t.Status,
				TransactionHash: t.TransactionHash,
				TransactionLink: t.TransactionLink,
			}, nil
		}

		select {
		case <-ctx.Done():
			return models.TransferState{Status: t.Status}, errors.Wrapf(models.ErrOutcomeUnknown,
				"transfer %s still %s: %v", ticket.TransferID, t.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) RequestFaucetFunds(ctx context.Context, walletID, addressID, assetID string) (models.FaucetResult, error) {
	path := addressPath(walletID, addressID) + "/faucet"
	if assetID != "" {
		path += "?asset_id=" + url.QueryEscape(assetID)
	}
	var f apiFaucet
	if err := c.do(ctx, http.MethodPost, path, nil, &f); err != nil {
		if isNotFound(err) {
			return models.FaucetResult{}, errors.Wrapf(models.ErrAddressNotFound, "address %s", addressID)
		}
		return models.FaucetResult{}, platformError(err, "request faucet funds")
	}
	return models.FaucetResult{TransactionHash: f.TransactionHash, TransactionLink: f.TransactionLink}, nil
}

func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	page := ""
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageLimit))
		if page != "" {
			q.Set("page", page)
		}
		var resp apiList[T]
		if err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), nil, &resp); err != nil {
			return nil, err
		}
		out = append(out, resp.Data...)
		if !resp.HasMore || resp.NextPage == "" || len(resp.Data) == 0 {
			return out, nil
		}
		page = resp.NextPage
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().
		SetContext(ctx).
		SetError(&APIError{})
	if result != nil {
		req.SetResult(result)
	}
	if body != nil {
		req.SetBody(body)
	}
	if c.signer != nil {
		pathOnly, _, _ := strings.Cut(path, "?")
		tok, err := c.signer.token(method, c.host, c.base+pathOnly)
		if err != nil {
			return err
		}
		req.SetAuthToken(tok)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	if resp.IsError() {
		apiErr, _ := resp.Error().(*APIError)
		if apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(resp.String())
		}
		return apiErr
	}
	return nil
}

func addressPath(walletID, addressID string) string {
	return "/v1/wallets/" + url.PathEscape(walletID) + "/addresses/" + url.PathEscape(addressID)
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func platformError(err error, op string) error {
	return errors.Wrapf(models.ErrPlatform, "%s: %v", op, err)
}
