package repositories

import (
	"context"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithAccount stores a user and its account profile in one transaction
func (r *UserRepository) CreateWithAccount(ctx context.Context, user *models.User, account *models.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isDuplicate(err) {
				return errors.Validation(map[string]string{"username": "A user with that username already exists."})
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
		}

		account.UserID = user.ID
		if err := tx.Omit(clause.Associations).Create(account).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create account")
		}
		account.User = *user

		return nil
	})
}

// EmailExists checks whether any user registered with email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check email")
	}
	return count > 0, nil
}

// UsernameExists checks whether username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check username")
	}
	return count > 0, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// GetAccountByUserID retrieves the account profile with its user
func (r *UserRepository) GetAccountByUserID(ctx context.Context, userID uint) (*models.Account, error) {
	var account models.Account
	result := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&account)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "account not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get account")
	}

	return &account, nil
}

// MarkVerified flips the account to verified and activates the user.
// staff is only ever raised here, never lowered.
func (r *UserRepository) MarkVerified(ctx context.Context, userID uint, staff bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Account{}).
			Where("user_id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"is_verified":        true,
				"verification_token": nil,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to verify account")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "account not found")
		}

		userColumns := map[string]interface{}{"is_active": true, "updated_at": time.Now().UTC()}
		if staff {
			userColumns["is_staff"] = true
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumns(userColumns).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to activate user")
		}

		return nil
	})
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{"password_hash": hash, "updated_at": time.Now().UTC()})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update password")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return nil
}

// UpdateProfile applies the supplied profile fields to user and account
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) error {
	userColumns := map[string]interface{}{}
	if update.FirstName != nil {
		userColumns["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		userColumns["last_name"] = *update.LastName
	}
	if update.Email != nil {
		userColumns["email"] = *update.Email
	}

	accountColumns := map[string]interface{}{}
	if update.Address != nil {
		accountColumns["address"] = *update.Address
	}
	if update.Image != nil {
		accountColumns["image"] = *update.Image
	}
	if update.MobileNumber != nil {
		accountColumns["mobile_number"] = *update.MobileNumber
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(userColumns) > 0 {
			userColumns["updated_at"] = time.Now().UTC()
			if err := tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumns(userColumns).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update user")
			}
		}
		if len(accountColumns) > 0 {
			if err := tx.Model(&models.Account{}).Where("user_id = ?", userID).UpdateColumns(accountColumns).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update account")
			}
		}
		return nil
	})
}

// TouchLastLogin records a successful login
func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).UpdateColumn("last_login", at).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update last login")
	}
	return nil
}
