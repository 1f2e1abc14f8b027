package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FlightsService is the admin CRUD surface for vols.
type FlightsService struct {
	client *Client
}

const adminFlightsPath = "/api/admin/vols"

func (s *FlightsService) List(ctx context.Context) ([]Flight, error) {
	var flights []Flight
	if err := s.client.do(ctx, http.MethodGet, adminFlightsPath, nil, nil, &flights); err != nil {
		return nil, errors.Wrap(err, "[Flights.List]")
	}
	return flights, nil
}

func (s *FlightsService) Get(ctx context.Context, id int64) (*Flight, error) {
	var flight Flight
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", adminFlightsPath, id), nil, nil, &flight); err != nil {
		return nil, errors.Wrap(err, "[Flights.Get]")
	}
	return &flight, nil
}

func (s *FlightsService) Create(ctx context.Context, flight Flight) (*Flight, error) {
	var created Flight
	if err := s.client.do(ctx, http.MethodPost, adminFlightsPath, nil, flight, &created); err != nil {
		return nil, errors.Wrap(err, "[Flights.Create]")
	}
	return &created, nil
}

func (s *FlightsService) Update(ctx context.Context, id int64, flight Flight) (*Flight, error) {
	var updated Flight
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", adminFlightsPath, id), nil, flight, &updated); err != nil {
		return nil, errors.Wrap(err, "[Flights.Update]")
	}
	return &updated, nil
}

func (s *FlightsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", adminFlightsPath, id), nil, nil, nil); err != nil {
		return errors.Wrap(err, "[Flights.Delete]")
	}
	return nil
}
