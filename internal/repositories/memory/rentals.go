package memory

import (
	"context"
	"sort"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
)

// RentalLedger serializes transactions on the store lock and restores the
// touched tables when the callback fails.
type RentalLedger struct {
	s *Store
}

func (l *RentalLedger) Transact(ctx context.Context, fn func(tx repositories.RentalTx) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "transaction aborted")
	}

	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	ads := make(map[uint]models.Advertisement, len(l.s.ads))
	for k, v := range l.s.ads {
		ads[k] = v
	}
	requests := make(map[uint]models.RentRequest, len(l.s.requests))
	for k, v := range l.s.requests {
		requests[k] = v
	}
	seq := l.s.seq["rent_requests"]

	if err := fn(&rentalTx{s: l.s}); err != nil {
		l.s.ads = ads
		l.s.requests = requests
		l.s.seq["rent_requests"] = seq
		return err
	}
	return nil
}

func (l *RentalLedger) ListForOwner(ctx context.Context, ownerID uint) ([]models.RentRequest, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	out := []models.RentRequest{}
	for _, req := range l.s.requests {
		if detailed, ok := l.ownedRequest(req, ownerID); ok {
			out = append(out, detailed)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (l *RentalLedger) GetForOwner(ctx context.Context, id, ownerID uint) (*models.RentRequest, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	req, ok := l.s.requests[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "Rent request not found.")
	}
	detailed, ok := l.ownedRequest(req, ownerID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "Rent request not found.")
	}
	return &detailed, nil
}

func (l *RentalLedger) ownedRequest(req models.RentRequest, ownerID uint) (models.RentRequest, bool) {
	ad, ok := l.s.ads[req.AdvertisementID]
	if !ok {
		return req, false
	}
	house, ok := l.s.houses[ad.HouseID]
	if !ok || house.OwnerID != ownerID {
		return req, false
	}
	ad.House = &house
	req.Advertisement = &ad
	req.RequestedBy = l.s.accountWithUser(req.RequestedByID)
	return req, true
}

// rentalTx runs with the store lock held by Transact.
type rentalTx struct {
	s *Store
}

func (t *rentalTx) GetRentRequest(id uint) (*models.RentRequest, error) {
	req, ok := t.s.requests[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "Rent request not found.")
	}
	return &req, nil
}

func (t *rentalTx) LockAdvertisement(id uint) (*models.Advertisement, error) {
	ad, ok := t.s.ads[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	house, ok := t.s.houses[ad.HouseID]
	if !ok {
		return nil, errors.New(errors.ErrCodeInternalError, "failed to load advertised house")
	}
	ad.House = &house
	return &ad, nil
}

func (t *rentalTx) HasRentRequest(advertisementID, accountID uint) (bool, error) {
	for _, req := range t.s.requests {
		if req.AdvertisementID == advertisementID && req.RequestedByID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (t *rentalTx) CreateRentRequest(req *models.RentRequest) error {
	if exists, _ := t.HasRentRequest(req.AdvertisementID, req.RequestedByID); exists {
		return errors.New(errors.ErrCodeConflict, "You have already sent a rent request for this advertisement.")
	}
	req.ID = t.s.nextID("rent_requests")
	req.CreatedAt = t.s.now()
	stored := *req
	stored.Advertisement = nil
	stored.RequestedBy = nil
	t.s.requests[req.ID] = stored
	return nil
}

func (t *rentalTx) MarkRequested(advertisementID uint) error {
	ad, ok := t.s.ads[advertisementID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	ad.IsRequested = true
	t.s.ads[advertisementID] = ad
	return nil
}

func (t *rentalTx) AcceptRentRequest(id uint) error {
	req, ok := t.s.requests[id]
	if !ok || req.Status != models.RentRequestStatusPending {
		return errors.New(errors.ErrCodeConflict, "Rent request is no longer pending.")
	}
	req.Status = models.RentRequestStatusAccepted
	t.s.requests[id] = req
	return nil
}

func (t *rentalTx) RejectPendingRentRequests(advertisementID, exceptID uint) (int64, error) {
	var n int64
	for id, req := range t.s.requests {
		if req.AdvertisementID == advertisementID && id != exceptID && req.Status == models.RentRequestStatusPending {
			req.Status = models.RentRequestStatusRejected
			t.s.requests[id] = req
			n++
		}
	}
	return n, nil
}

func (t *rentalTx) MarkRented(advertisementID uint) error {
	ad, ok := t.s.ads[advertisementID]
	if !ok || ad.IsRented {
		return errors.New(errors.ErrCodeConflict, "This house is already rented.")
	}
	ad.IsRented = true
	t.s.ads[advertisementID] = ad
	return nil
}
