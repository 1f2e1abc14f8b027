package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// HotelsService is the admin CRUD surface for hotels.
type HotelsService struct {
	client *Client
}

const adminHotelsPath = "/api/admin/hotels"

func (s *HotelsService) List(ctx context.Context) ([]Hotel, error) {
	var hotels []Hotel
	if err := s.client.do(ctx, http.MethodGet, adminHotelsPath, nil, nil, &hotels); err != nil {
		return nil, errors.Wrap(err, "[Hotels.List]")
	}
	return hotels, nil
}

func (s *HotelsService) Get(ctx context.Context, id int64) (*Hotel, error) {
	var hotel Hotel
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", adminHotelsPath, id), nil, nil, &hotel); err != nil {
		return nil, errors.Wrap(err, "[Hotels.Get]")
	}
	return &hotel, nil
}

func (s *HotelsService) Create(ctx context.Context, hotel Hotel) (*Hotel, error) {
	var created Hotel
	if err := s.client.do(ctx, http.MethodPost, adminHotelsPath, nil, hotel, &created); err != nil {
		return nil, errors.Wrap(err, "[Hotels.Create]")
	}
	return &created, nil
}

func (s *HotelsService) Update(ctx context.Context, id int64, hotel Hotel) (*Hotel, error) {
	var updated Hotel
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", adminHotelsPath, id), nil, hotel, &updated); err != nil {
		return nil, errors.Wrap(err, "[Hotels.Update]")
	}
	return &updated, nil
}

func (s *HotelsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", adminHotelsPath, id), nil, nil, nil); err != nil {
		return errors.Wrap(err, "[Hotels.Delete]")
	}
	return nil
}
