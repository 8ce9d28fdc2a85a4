package services

import (
	"context"
	"strings"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/security"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/google/uuid"
)

const invalidCredentials = "Invalid credentials"

type AccountConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	VerificationTTL time.Duration
	BcryptCost      int
}

type RegisterInput struct {
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email,max=254"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" validate:"max=150"`
	Password        string `json:"password" validate:"required,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	AccountType     string `json:"account_type" validate:"required,oneof=Admin User"`
	Address         string `json:"address" validate:"required,max=100"`
	Image           string `json:"image" validate:"max=500"`
	MobileNumber    string `json:"mobile_number" validate:"required,phone"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=72"`
}

type ProfileInput struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" validate:"omitempty,max=150"`
	Email        *string `json:"email" validate:"omitempty,email,max=254"`
	Address      *string `json:"address" validate:"omitempty,max=100"`
	Image        *string `json:"image" validate:"omitempty,max=500"`
	MobileNumber *string `json:"mobile_number" validate:"omitempty,phone"`
}

// AccountService covers registration, verification, sessions and profiles.
type AccountService struct {
	users     UserStore
	tokens    TokenStore
	favorites FavoriteStore
	notifier  Notifier
	cache     AdvertisementCache
	cfg       AccountConfig
	now       func() time.Time
}

// cache holds public listings, which embed owner profiles.
func NewAccountService(users UserStore, tokens TokenStore, favorites FavoriteStore, notifier Notifier, cache AdvertisementCache, cfg AccountConfig) *AccountService {
	return &AccountService{
		users:     users,
		tokens:    tokens,
		favorites: favorites,
		notifier:  notifier,
		cache:     cache,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an inactive account and mails its verification link.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, errors.Validation(map[string]string{"confirm_password": "Passwords must match."})
	}

	if err := s.checkIdentityFree(ctx, in.Email, in.Username); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}

	verification := uuid.New()
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    security.SanitizeText(in.FirstName),
		LastName:     security.SanitizeText(in.LastName),
		PasswordHash: hash,
	}
	account := &models.Account{
		AccountType:       in.AccountType,
		Address:           security.SanitizeText(in.Address),
		Image:             strings.TrimSpace(in.Image),
		MobileNumber:      security.NormalizePhoneNumber(in.MobileNumber),
		VerificationToken: &verification,
		Favourites:        []uint{},
	}
	if err := s.users.CreateWithAccount(ctx, user, account); err != nil {
		return nil, err
	}

	token, err := security.GenerateJWT(user.ID, security.PurposeVerification, verification.String(), s.cfg.VerificationTTL, s.cfg.JWTSecret)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to sign verification token")
	}
	if err := s.notifier.SendVerificationEmail(ctx, user, security.EncodeUID(user.ID), token); err != nil {
		logger.Warn("Verification email not dispatched", "user_id", user.ID, "error", err)
	}

	logger.Info("Account registered", "user_id", user.ID, "account_type", account.AccountType)
	return account, nil
}

// checkIdentityFree reports email and username conflicts together as field errors.
func (s *AccountService) checkIdentityFree(ctx context.Context, email, username string) error {
	conflicts := map[string]string{}
	emailTaken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if emailTaken {
		conflicts["email"] = "Email already exists."
	}
	usernameTaken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if usernameTaken {
		conflicts["username"] = "A user with that username already exists."
	}
	if len(conflicts) > 0 {
		return errors.Validation(conflicts)
	}
	return nil
}

// Confirm verifies the account named by uid when token is its current verification token.
func (s *AccountService) Confirm(ctx context.Context, uid, token string) error {
	invalidLink := errors.New(errors.ErrCodeInvalidLink, "Invalid verification link.")
	invalidToken := errors.New(errors.ErrCodeInvalidToken, "Invalid token.")

	userID, err := security.DecodeUID(uid)
	if err != nil {
		return invalidLink
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return invalidLink
		}
		return err
	}
	account, err := s.users.GetAccountByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return invalidLink
		}
		return err
	}

	claims, err := security.ValidateJWT(token, security.PurposeVerification, s.cfg.JWTSecret)
	if err != nil || claims.UserID != user.ID {
		return invalidToken
	}
	if account.VerificationToken == nil || claims.ID != account.VerificationToken.String() {
		return invalidToken
	}

	if err := s.users.MarkVerified(ctx, user.ID, account.AccountType == models.AccountTypeAdmin); err != nil {
		return err
	}

	logger.Info("Account verified", "user_id", user.ID)
	return nil
}

// Login returns the caller's persistent token, issuing one when none is live.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeUnauthorized, invalidCredentials)
		}
		return nil, err
	}
	if !security.CheckPassword(user.PasswordHash, in.Password) || !user.IsActive {
		return nil, errors.New(errors.ErrCodeUnauthorized, invalidCredentials)
	}
	account, err := s.users.GetAccountByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeUnauthorized, invalidCredentials)
		}
		return nil, err
	}
	if !account.IsVerified {
		return nil, errors.New(errors.ErrCodeUnauthorized, invalidCredentials)
	}

	key, err := s.sessionToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		logger.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}

	logger.Info("User logged in", "user_id", user.ID)
	return &LoginResult{Token: key, User: user.Username}, nil
}

func (s *AccountService) sessionToken(ctx context.Context, userID uint) (string, error) {
	now := s.now()

	existing, err := s.tokens.GetByUserID(ctx, userID)
	if err == nil && !existing.Expired(now) {
		return existing.Key, nil
	}
	if err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
		return "", err
	}

	key, err := security.GenerateJWT(userID, security.PurposeSession, uuid.NewString(), s.cfg.TokenTTL, s.cfg.JWTSecret)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to sign session token")
	}
	token := &models.AuthToken{Key: key, UserID: userID, ExpiresAt: now.Add(s.cfg.TokenTTL)}
	if err := s.tokens.Replace(ctx, token); err != nil {
		return "", err
	}
	return key, nil
}

// Authenticate resolves a bearer token to its principal.
func (s *AccountService) Authenticate(ctx context.Context, raw string) (*policy.Principal, error) {
	unauthorized := errors.New(errors.ErrCodeUnauthorized, "Invalid token.")

	claims, err := security.ValidateJWT(raw, security.PurposeSession, s.cfg.JWTSecret)
	if err != nil {
		return nil, unauthorized
	}
	stored, err := s.tokens.GetByKey(ctx, raw)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, unauthorized
		}
		return nil, err
	}
	if stored.UserID != claims.UserID || stored.Expired(s.now()) {
		return nil, unauthorized
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, unauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New(errors.ErrCodeUnauthorized, "User inactive or deleted.")
	}
	account, err := s.users.GetAccountByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, unauthorized
		}
		return nil, err
	}

	return &policy.Principal{
		UserID:    user.ID,
		AccountID: account.ID,
		Username:  user.Username,
		Role:      account.AccountType,
		IsStaff:   user.IsStaff,
		Token:     raw,
	}, nil
}

// Logout deletes the caller's token.
func (s *AccountService) Logout(ctx context.Context, p *policy.Principal) error {
	if err := s.tokens.DeleteByUserID(ctx, p.UserID); err != nil {
		logger.Error("Failed to delete auth token", "user_id", p.UserID, "error", err)
		return errors.Wrap(err, errors.ErrCodeInternalError, "Logout failed.")
	}
	logger.Info("User logged out", "user_id", p.UserID)
	return nil
}

func (s *AccountService) ChangePassword(ctx context.Context, p *policy.Principal, in ChangePasswordInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !security.CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return errors.New(errors.ErrCodeBadRequest, "Current password is incorrect.")
	}
	if in.NewPassword == in.CurrentPassword {
		return errors.New(errors.ErrCodeBadRequest, "New password cannot be the same as the current password.")
	}

	hash, err := security.HashPassword(in.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	logger.Info("Password changed", "user_id", user.ID)
	return nil
}

// Profile returns the caller's account with its favourite advertisement ids.
func (s *AccountService) Profile(ctx context.Context, p *policy.Principal) (*models.Account, error) {
	account, err := s.users.GetAccountByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	ids, err := s.favorites.ListIDs(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	account.Favourites = ids
	return account, nil
}

// UpdateProfile changes only the fields present in in.
func (s *AccountService) UpdateProfile(ctx context.Context, p *policy.Principal, in ProfileInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	update := repositories.ProfileUpdate{
		FirstName: sanitizedPtr(in.FirstName),
		LastName:  sanitizedPtr(in.LastName),
		Email:     trimmedPtr(in.Email),
		Address:   sanitizedPtr(in.Address),
		Image:     trimmedPtr(in.Image),
	}
	if in.MobileNumber != nil {
		normalized := security.NormalizePhoneNumber(*in.MobileNumber)
		update.MobileNumber = &normalized
	}

	if err := s.users.UpdateProfile(ctx, p.UserID, update); err != nil {
		return err
	}
	invalidateListings(ctx, s.cache)
	return nil
}

// CreateAdmin provisions a verified staff account without the email round trip.
func (s *AccountService) CreateAdmin(ctx context.Context, username, email, password string) (*models.Account, error) {
	in := RegisterInput{
		Username:        strings.TrimSpace(username),
		Email:           strings.TrimSpace(email),
		Password:        password,
		ConfirmPassword: password,
		AccountType:     models.AccountTypeAdmin,
		Address:         "-",
		MobileNumber:    "0000000000",
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkIdentityFree(ctx, in.Email, in.Username); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      true,
	}
	account := &models.Account{
		AccountType:  models.AccountTypeAdmin,
		Address:      in.Address,
		MobileNumber: in.MobileNumber,
		IsVerified:   true,
		Favourites:   []uint{},
	}
	if err := s.users.CreateWithAccount(ctx, user, account); err != nil {
		return nil, err
	}

	logger.Info("Admin account created", "user_id", user.ID)
	return account, nil
}

func sanitizedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	clean := security.SanitizeText(*v)
	return &clean
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}
