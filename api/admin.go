package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// AdminReservationsService lists and manages every client's reservations.
type AdminReservationsService struct {
	client *Client
}

const adminReservationsPath = "/api/admin/reservations"

func (s *AdminReservationsService) All(ctx context.Context) ([]AdminReservationRow, error) {
	var rows []AdminReservationRow
	if err := s.client.do(ctx, http.MethodGet, adminReservationsPath, nil, nil, &rows); err != nil {
		return nil, errors.Wrap(err, "[Admin.All]")
	}
	return rows, nil
}

func (s *AdminReservationsService) Cancel(ctx context.Context, typ ReservationType, id int64) error {
	segment, err := typeSegment(typ)
	if err != nil {
		return errors.Wrap(err, "[Admin.Cancel]")
	}
	path := fmt.Sprintf("%s/%s/%d/cancel", adminReservationsPath, segment, id)
	if err := s.client.do(ctx, http.MethodPatch, path, nil, struct{}{}, nil); err != nil {
		return errors.Wrap(err, "[Admin.Cancel]")
	}
	return nil
}

func (s *AdminReservationsService) Delete(ctx context.Context, typ ReservationType, id int64) error {
	segment, err := typeSegment(typ)
	if err != nil {
		return errors.Wrap(err, "[Admin.Delete]")
	}
	path := fmt.Sprintf("%s/%s/%d", adminReservationsPath, segment, id)
	if err := s.client.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return errors.Wrap(err, "[Admin.Delete]")
	}
	return nil
}

// StatsService serves the admin dashboard figures.
type StatsService struct {
	client *Client
}

// Reservations returns aggregates for the inclusive from/to date range
// (YYYY-MM-DD).
func (s *StatsService) Reservations(ctx context.Context, from, to string) (*ReservationStats, error) {
	query := url.Values{"from": []string{from}, "to": []string{to}}
	var stats ReservationStats
	if err := s.client.do(ctx, http.MethodGet, "/api/admin/stats/reservations", query, nil, &stats); err != nil {
		return nil, errors.Wrap(err, "[Stats.Reservations]")
	}
	return &stats, nil
}
