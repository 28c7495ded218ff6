package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sharath018/hotel-management-backend/internal/auditlog"
	"github.com/sharath018/hotel-management-backend/utils"
)

var (
	ErrInvalidRoomType   = errors.New("invalid room type")
	ErrInvalidRoomStatus = errors.New("invalid room status")
	ErrDuplicateRoom     = errors.New("room number already exists")
)

const (
	listCacheKey = "rooms:list"
	listCacheTTL = 2 * time.Minute
)

type Service interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest, actorID uint, ip string) (*Room, error)
	GetRoom(ctx context.Context, id uint) (*Room, error)
	ListRooms(ctx context.Context, filters RoomFilters) ([]Room, error)
	ListBookableRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, id uint, req UpdateRoomRequest, actorID uint, ip string) (*Room, error)
	UpdateRoomStatus(ctx context.Context, id uint, status string, actorID uint, ip string) error
	DeleteRoom(ctx context.Context, id uint, actorID uint, ip string) error
	SearchRooms(ctx context.Context, q string, limit int) ([]Room, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest, actorID uint, ip string) (*Room, error) {
	if !ValidType(req.Type) {
		return nil, ErrInvalidRoomType
	}

	if _, err := s.repo.GetByNumber(ctx, req.Number); err == nil {
		return nil, ErrDuplicateRoom
	}

	amenities, _ := json.Marshal(req.Amenities)
	images, _ := json.Marshal(req.Images)

	room := &Room{
		Number:        req.Number,
		Type:          req.Type,
		Status:        StatusAvailable,
		PricePerNight: req.PricePerNight,
		Discount:      req.Discount,
		Capacity:      req.Capacity,
		Description:   req.Description,
		Amenities:     amenities,
		Images:        images,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateListCache(ctx)
	s.audit(ctx, actorID, room.ID, auditlog.ActionRoomCreated, map[string]interface{}{
		"number": room.Number,
		"type":   room.Type,
	}, ip)

	return room, nil
}

func (s *service) GetRoom(ctx context.Context, id uint) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRooms(ctx context.Context, filters RoomFilters) ([]Room, error) {
	return s.repo.List(ctx, filters)
}

// ListBookableRooms serves the public room listing. Rooms under maintenance
// or cleaning are hidden. Backed by a short-lived Redis cache since this is
// the hottest read path.
func (s *service) ListBookableRooms(ctx context.Context) ([]Room, error) {
	var cached []Room
	if hit, err := utils.CacheGetJSON(ctx, listCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	rooms, err := s.repo.List(ctx, RoomFilters{})
	if err != nil {
		return nil, err
	}

	bookable := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Bookable() {
			bookable = append(bookable, room)
		}
	}

	if err := utils.CacheSetJSON(ctx, listCacheKey, bookable, listCacheTTL); err != nil {
		log.Printf("⚠️ Failed to cache room list: %v", err)
	}

	return bookable, nil
}

func (s *service) UpdateRoom(ctx context.Context, id uint, req UpdateRoomRequest, actorID uint, ip string) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !ValidType(*req.Type) {
			return nil, ErrInvalidRoomType
		}
		room.Type = *req.Type
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight <= 0 {
			return nil, errors.New("price per night must be positive")
		}
		room.PricePerNight = *req.PricePerNight
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			return nil, errors.New("discount must be between 0 and 100")
		}
		room.Discount = *req.Discount
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Amenities != nil {
		amenities, _ := json.Marshal(*req.Amenities)
		room.Amenities = amenities
	}
	if req.Images != nil {
		images, _ := json.Marshal(*req.Images)
		room.Images = images
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateListCache(ctx)
	s.audit(ctx, actorID, room.ID, auditlog.ActionRoomUpdated, map[string]interface{}{
		"number": room.Number,
	}, ip)

	return room, nil
}

func (s *service) UpdateRoomStatus(ctx context.Context, id uint, status string, actorID uint, ip string) error {
	if !ValidStatus(status) {
		return ErrInvalidRoomStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.audit(ctx, actorID, id, auditlog.ActionRoomStatusChanged, map[string]interface{}{
		"status": status,
	}, ip)

	return nil
}

func (s *service) DeleteRoom(ctx context.Context, id uint, actorID uint, ip string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.audit(ctx, actorID, id, auditlog.ActionRoomDeleted, nil, ip)

	return nil
}

func (s *service) SearchRooms(ctx context.Context, q string, limit int) ([]Room, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.repo.Search(ctx, q, limit)
}

func (s *service) invalidateListCache(ctx context.Context) {
	utils.CacheInvalidate(ctx, listCacheKey)
}

func (s *service) audit(ctx context.Context, actorID uint, roomID uint, action string, details map[string]interface{}, ip string) {
	if s.auditSvc == nil {
		return
	}
	rid := roomID
	if err := s.auditSvc.LogAction(ctx, &actorID, "room", &rid, action, details, ip, "success"); err != nil {
		log.Printf("⚠️ Failed to write audit log for %s: %v", action, err)
	}
}
