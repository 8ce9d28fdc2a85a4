package repositories

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RentalTx is the set of operations available inside one rental transaction.
// Every call shares the transaction; an error returned from the callback
// passed to Transact rolls all of them back.
type RentalTx interface {
	GetRentRequest(id uint) (*models.RentRequest, error)
	// LockAdvertisement loads the advertisement with its house and holds a row
	// lock on it until the transaction ends.
	LockAdvertisement(id uint) (*models.Advertisement, error)
	HasRentRequest(advertisementID, accountID uint) (bool, error)
	CreateRentRequest(req *models.RentRequest) error
	MarkRequested(advertisementID uint) error
	// AcceptRentRequest moves a PENDING request to ACCEPTED. A request in any
	// other state yields a CONFLICT error.
	AcceptRentRequest(id uint) error
	RejectPendingRentRequests(advertisementID, exceptID uint) (int64, error)
	// MarkRented sets the rented flag. An already rented advertisement yields CONFLICT.
	MarkRented(advertisementID uint) error
}

// RentalLedger owns rent requests and the advertisement flags they drive.
type RentalLedger struct {
	db *gorm.DB
}

func NewRentalLedger(db *gorm.DB) *RentalLedger {
	return &RentalLedger{db: db}
}

// Transact runs fn inside a database transaction
func (l *RentalLedger) Transact(ctx context.Context, fn func(tx RentalTx) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&rentalTx{db: tx})
	})
}

// ListForOwner returns rent requests on advertisements of houses owned by ownerID
func (l *RentalLedger) ListForOwner(ctx context.Context, ownerID uint) ([]models.RentRequest, error) {
	var requests []models.RentRequest
	err := l.ownerScope(l.db.WithContext(ctx), ownerID).
		Preload("Advertisement.House").
		Preload("RequestedBy.User").
		Order("rent_requests.created_at DESC, rent_requests.id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list rent requests")
	}
	return requests, nil
}

// GetForOwner returns one rent request if it belongs to ownerID's houses
func (l *RentalLedger) GetForOwner(ctx context.Context, id, ownerID uint) (*models.RentRequest, error) {
	var request models.RentRequest
	result := l.ownerScope(l.db.WithContext(ctx), ownerID).
		Preload("Advertisement.House").
		Preload("RequestedBy.User").
		Where("rent_requests.id = ?", id).
		First(&request)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "Rent request not found.")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get rent request")
	}
	return &request, nil
}

func (l *RentalLedger) ownerScope(tx *gorm.DB, ownerID uint) *gorm.DB {
	return tx.Model(&models.RentRequest{}).
		Joins("JOIN advertisements ON advertisements.id = rent_requests.advertisement_id").
		Joins("JOIN houses ON houses.id = advertisements.house_id").
		Where("houses.owner_id = ?", ownerID)
}

type rentalTx struct {
	db *gorm.DB
}

func (t *rentalTx) GetRentRequest(id uint) (*models.RentRequest, error) {
	var request models.RentRequest
	result := t.db.First(&request, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "Rent request not found.")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get rent request")
	}
	return &request, nil
}

func (t *rentalTx) LockAdvertisement(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ad, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to lock advertisement")
	}

	var house models.House
	if err := t.db.First(&house, ad.HouseID).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load advertised house")
	}
	ad.House = &house

	return &ad, nil
}

func (t *rentalTx) HasRentRequest(advertisementID, accountID uint) (bool, error) {
	var count int64
	err := t.db.Model(&models.RentRequest{}).
		Where("advertisement_id = ? AND requested_by_id = ?", advertisementID, accountID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check rent request")
	}
	return count > 0, nil
}

func (t *rentalTx) CreateRentRequest(req *models.RentRequest) error {
	if err := t.db.Omit(clause.Associations).Create(req).Error; err != nil {
		if isDuplicate(err) {
			return errors.New(errors.ErrCodeConflict, "You have already sent a rent request for this advertisement.")
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create rent request")
	}
	return nil
}

func (t *rentalTx) MarkRequested(advertisementID uint) error {
	err := t.db.Model(&models.Advertisement{}).
		Where("id = ?", advertisementID).
		UpdateColumn("is_requested", true).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to mark advertisement requested")
	}
	return nil
}

func (t *rentalTx) AcceptRentRequest(id uint) error {
	result := t.db.Model(&models.RentRequest{}).
		Where("id = ? AND status = ?", id, models.RentRequestStatusPending).
		UpdateColumn("status", models.RentRequestStatusAccepted)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to accept rent request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeConflict, "Rent request is no longer pending.")
	}
	return nil
}

func (t *rentalTx) RejectPendingRentRequests(advertisementID, exceptID uint) (int64, error) {
	result := t.db.Model(&models.RentRequest{}).
		Where("advertisement_id = ? AND id <> ? AND status = ?", advertisementID, exceptID, models.RentRequestStatusPending).
		UpdateColumn("status", models.RentRequestStatusRejected)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to reject pending rent requests")
	}
	return result.RowsAffected, nil
}

func (t *rentalTx) MarkRented(advertisementID uint) error {
	result := t.db.Model(&models.Advertisement{}).
		Where("id = ? AND is_rented = ?", advertisementID, false).
		UpdateColumn("is_rented", true)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to mark advertisement rented")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeConflict, "This house is already rented.")
	}
	return nil
}
