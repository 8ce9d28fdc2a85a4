package services

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

type RentRequestInput struct {
	Advertisement uint `json:"advertisement" validate:"required"`
}

// RentService records rent requests and resolves them. Every state change
// runs inside one ledger transaction with the advertisement row locked.
type RentService struct {
	ledger RentalLedger
	cache  AdvertisementCache
}

func NewRentService(ledger RentalLedger, cache AdvertisementCache) *RentService {
	return &RentService{ledger: ledger, cache: cache}
}

// RequestRent files a PENDING request by the caller.
func (s *RentService) RequestRent(ctx context.Context, p *policy.Principal, in RentRequestInput) (*models.RentRequest, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var request *models.RentRequest
	err := s.ledger.Transact(ctx, func(tx repositories.RentalTx) error {
		ad, err := tx.LockAdvertisement(in.Advertisement)
		if err != nil {
			return err
		}
		if ad.IsRented {
			return errors.New(errors.ErrCodeConflict, "This advertisement has already been rented.")
		}

		exists, err := tx.HasRentRequest(ad.ID, p.AccountID)
		if err != nil {
			return err
		}
		if exists {
			return errors.New(errors.ErrCodeConflict, "You have already sent a rent request for this advertisement.")
		}

		request = &models.RentRequest{
			AdvertisementID: ad.ID,
			RequestedByID:   p.AccountID,
			Status:          models.RentRequestStatusPending,
		}
		if err := tx.CreateRentRequest(request); err != nil {
			return err
		}
		return tx.MarkRequested(ad.ID)
	})
	if err != nil {
		return nil, err
	}
	invalidateListings(ctx, s.cache)

	logger.Info("Rent request created", "rent_request_id", request.ID, "advertisement_id", request.AdvertisementID, "account_id", p.AccountID)
	return request, nil
}

// Accept marks the request ACCEPTED, rejects every other pending request on
// the same advertisement and flags the advertisement rented.
func (s *RentService) Accept(ctx context.Context, p *policy.Principal, requestID uint) error {
	var rejected int64
	var advertisementID uint

	err := s.ledger.Transact(ctx, func(tx repositories.RentalTx) error {
		request, err := tx.GetRentRequest(requestID)
		if err != nil {
			return err
		}
		ad, err := tx.LockAdvertisement(request.AdvertisementID)
		if err != nil {
			return err
		}
		advertisementID = ad.ID

		if ad.House == nil || ad.House.OwnerID != p.AccountID {
			return errors.New(errors.ErrCodeForbidden, "You are not authorized to accept this request.")
		}
		if ad.IsRented {
			return errors.New(errors.ErrCodeConflict, "This house is already rented.")
		}

		if err := tx.AcceptRentRequest(request.ID); err != nil {
			return err
		}
		if rejected, err = tx.RejectPendingRentRequests(ad.ID, request.ID); err != nil {
			return err
		}
		return tx.MarkRented(ad.ID)
	})
	if err != nil {
		return err
	}
	invalidateListings(ctx, s.cache)

	logger.Info("Rent request accepted",
		"rent_request_id", requestID,
		"advertisement_id", advertisementID,
		"rejected", rejected,
	)
	return nil
}

// ListForOwner returns requests made on the caller's houses.
func (s *RentService) ListForOwner(ctx context.Context, p *policy.Principal) ([]models.RentRequest, error) {
	return s.ledger.ListForOwner(ctx, p.AccountID)
}

func (s *RentService) GetForOwner(ctx context.Context, p *policy.Principal, id uint) (*models.RentRequest, error) {
	return s.ledger.GetForOwner(ctx, id, p.AccountID)
}
