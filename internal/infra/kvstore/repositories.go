package kvstore

import (
	"context"
	"encoding/json"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
)

// clientKey scopes a store key to one client namespace.
func clientKey(client entity.ClientID, key string) string {
	return "clients/" + client.String() + "/" + key
}

// loadJSON decodes the value under key into dst and reports whether it existed.
func loadJSON(ctx context.Context, store repository.KVStore, key string, dst any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, domainerrors.NewStoreError(err, "read "+key)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, domainerrors.NewStoreError(errors.Wrapf(err, "decode %s", key), "read "+key)
	}

	return true, nil
}

func saveJSON(ctx context.Context, store repository.KVStore, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return domainerrors.NewStoreError(errors.Wrapf(err, "encode %s", key), "write "+key)
	}

	if err := store.Set(ctx, key, string(raw)); err != nil {
		return domainerrors.NewStoreError(err, "write "+key)
	}

	return nil
}

type cartRepository struct {
	store repository.KVStore
}

// NewCartRepository persists carts as JSON under the "cart" key.
func NewCartRepository(store repository.KVStore) repository.CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) Load(ctx context.Context, client entity.ClientID) (*entity.Cart, error) {
	cart := entity.NewCart()
	if _, err := loadJSON(ctx, r.store, clientKey(client, constants.KeyCart), cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, client entity.ClientID, cart *entity.Cart) error {
	return saveJSON(ctx, r.store, clientKey(client, constants.KeyCart), cart)
}

type accountRepository struct {
	store repository.KVStore
}

// NewAccountRepository persists the account table as a JSON array under the "users" key.
func NewAccountRepository(store repository.KVStore) repository.AccountRepository {
	return &accountRepository{store: store}
}

func (r *accountRepository) List(ctx context.Context, client entity.ClientID) ([]entity.UserAccount, error) {
	var accounts []entity.UserAccount
	if _, err := loadJSON(ctx, r.store, clientKey(client, constants.KeyUsers), &accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) Save(ctx context.Context, client entity.ClientID, accounts []entity.UserAccount) error {
	if accounts == nil {
		accounts = []entity.UserAccount{}
	}

	return saveJSON(ctx, r.store, clientKey(client, constants.KeyUsers), accounts)
}

type sessionRepository struct {
	store repository.KVStore
}

// NewSessionRepository persists the current user as JSON under the "currentUser" key.
func NewSessionRepository(store repository.KVStore) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Load(ctx context.Context, client entity.ClientID) (*entity.UserAccount, error) {
	var user *entity.UserAccount
	if _, err := loadJSON(ctx, r.store, clientKey(client, constants.KeyCurrentUser), &user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *sessionRepository) Save(ctx context.Context, client entity.ClientID, user *entity.UserAccount) error {
	if user == nil {
		return r.Clear(ctx, client)
	}

	return saveJSON(ctx, r.store, clientKey(client, constants.KeyCurrentUser), user)
}

func (r *sessionRepository) Clear(ctx context.Context, client entity.ClientID) error {
	if err := r.store.Delete(ctx, clientKey(client, constants.KeyCurrentUser)); err != nil {
		return domainerrors.NewStoreError(err, "delete "+constants.KeyCurrentUser)
	}

	return nil
}
