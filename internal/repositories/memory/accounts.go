package memory

import (
	"context"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) CreateWithAccount(ctx context.Context, user *models.User, account *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return errors.Validation(map[string]string{"username": "A user with that username already exists."})
		}
	}

	now := r.s.now()
	user.ID = r.s.nextID("users")
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user

	account.ID = r.s.nextID("accounts")
	account.UserID = user.ID
	stored := *account
	stored.User = models.User{}
	r.s.accounts[account.ID] = stored
	account.User = *user

	return nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if sameFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "user not found")
}

func (r *UserRepository) GetAccountByUserID(ctx context.Context, userID uint) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accountByUserID(userID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "account not found")
	}
	return r.s.accountWithUser(a.ID), nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, userID uint, staff bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accountByUserID(userID)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "account not found")
	}
	a.IsVerified = true
	a.VerificationToken = nil
	r.s.accounts[a.ID] = a

	u := r.s.users[userID]
	u.IsActive = true
	if staff {
		u.IsStaff = true
	}
	u.UpdatedAt = r.s.now()
	r.s.users[userID] = u
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	u.PasswordHash = hash
	u.UpdatedAt = r.s.now()
	r.s.users[userID] = u
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, update repositories.ProfileUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	u.UpdatedAt = r.s.now()
	r.s.users[userID] = u

	a, ok := r.s.accountByUserID(userID)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "account not found")
	}
	if update.Address != nil {
		a.Address = *update.Address
	}
	if update.Image != nil {
		a.Image = *update.Image
	}
	if update.MobileNumber != nil {
		a.MobileNumber = *update.MobileNumber
	}
	r.s.accounts[a.ID] = a
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	u.LastLogin = &at
	r.s.users[userID] = u
	return nil
}

type TokenRepository struct {
	s *Store
}

func (r *TokenRepository) GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.tokens {
		if t.UserID == userID {
			return &t, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "token not found")
}

func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "token not found")
	}
	return &t, nil
}

func (r *TokenRepository) Replace(ctx context.Context, token *models.AuthToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, t := range r.s.tokens {
		if t.UserID == token.UserID {
			delete(r.s.tokens, key)
		}
	}
	token.CreatedAt = r.s.now()
	stored := *token
	stored.User = nil
	r.s.tokens[token.Key] = stored
	return nil
}

func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, t := range r.s.tokens {
		if t.UserID == userID {
			delete(r.s.tokens, key)
		}
	}
	return nil
}
