package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// CatalogService is the client-facing search surface.
type CatalogService struct {
	client *Client
}

func (s *CatalogService) Flights(ctx context.Context) ([]Flight, error) {
	var flights []Flight
	if err := s.client.do(ctx, http.MethodGet, "/api/client/vols", nil, nil, &flights); err != nil {
		return nil, errors.Wrap(err, "[Catalog.Flights]")
	}
	return flights, nil
}

func (s *CatalogService) Hotels(ctx context.Context) ([]Hotel, error) {
	var hotels []Hotel
	if err := s.client.do(ctx, http.MethodGet, "/api/client/hotels", nil, nil, &hotels); err != nil {
		return nil, errors.Wrap(err, "[Catalog.Hotels]")
	}
	return hotels, nil
}

// ReservationsService creates, lists and cancels the caller's reservations.
type ReservationsService struct {
	client *Client
}

const clientReservationsPath = "/api/client/reservations"

func (s *ReservationsService) ReserveFlight(ctx context.Context, req ReserveFlightRequest) (*Reservation, error) {
	var reservation Reservation
	if err := s.client.do(ctx, http.MethodPost, clientReservationsPath+"/vols", nil, req, &reservation); err != nil {
		return nil, errors.Wrap(err, "[Reservations.ReserveFlight]")
	}
	return &reservation, nil
}

func (s *ReservationsService) ReserveHotel(ctx context.Context, req ReserveHotelRequest) (*Reservation, error) {
	var reservation Reservation
	if err := s.client.do(ctx, http.MethodPost, clientReservationsPath+"/hotels", nil, req, &reservation); err != nil {
		return nil, errors.Wrap(err, "[Reservations.ReserveHotel]")
	}
	return &reservation, nil
}

func (s *ReservationsService) Mine(ctx context.Context) ([]Reservation, error) {
	var reservations []Reservation
	if err := s.client.do(ctx, http.MethodGet, clientReservationsPath, nil, nil, &reservations); err != nil {
		return nil, errors.Wrap(err, "[Reservations.Mine]")
	}
	return reservations, nil
}

// Cancel flips a reservation to CANCELED. The server keys the endpoint by
// reservation type, singular path segment.
func (s *ReservationsService) Cancel(ctx context.Context, typ ReservationType, id int64) error {
	segment, err := typeSegment(typ)
	if err != nil {
		return errors.Wrap(err, "[Reservations.Cancel]")
	}
	path := fmt.Sprintf("%s/%s/%d/cancel", clientReservationsPath, segment, id)
	if err := s.client.do(ctx, http.MethodPatch, path, nil, struct{}{}, nil); err != nil {
		return errors.Wrap(err, "[Reservations.Cancel]")
	}
	return nil
}

// PaymentsService initiates payment for a pending reservation.
type PaymentsService struct {
	client *Client
}

func (s *PaymentsService) Pay(ctx context.Context, typ ReservationType, reservationID int64, req PayRequest) (*Payment, error) {
	segment, err := typeSegment(typ)
	if err != nil {
		return nil, errors.Wrap(err, "[Payments.Pay]")
	}
	var payment Payment
	path := fmt.Sprintf("/api/client/payments/%s/%d", segment, reservationID)
	if err := s.client.do(ctx, http.MethodPost, path, nil, req, &payment); err != nil {
		return nil, errors.Wrap(err, "[Payments.Pay]")
	}
	return &payment, nil
}

func typeSegment(typ ReservationType) (string, error) {
	switch typ {
	case ReservationFlight:
		return "vol", nil
	case ReservationHotel:
		return "hotel", nil
	}
	return "", errors.Errorf("unknown reservation type %q", typ)
}
