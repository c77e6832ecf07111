package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"storefront-backend/internal/models"
)

func DefaultBranches() []models.Branch {
	return []models.Branch{
		{
			ID:          1,
			Name:        "강남점",
			Address:     "서울특별시 강남구 테헤란로 123",
			Phone:       "02-1234-5678",
			Hours:       "평일 9:00-18:00, 토요일 9:00-15:00",
			Image:       "/korea-map.svg",
			Description: "강남 최고의 금 매입 전문점입니다. 공정한 시세와 친절한 서비스로 고객만족을 최우선으로 합니다.",
			Features:    []string{"24K 금 전문 매입", "실시간 시세 적용", "당일 현금 지급", "무료 감정"},
			Lat:         37.5012767,
			Lng:         127.0396417,
		},
		{
			ID:          2,
			Name:        "홍대점",
			Address:     "서울특별시 마포구 홍익로 456",
			Phone:       "02-2345-6789",
			Hours:       "평일 10:00-19:00, 토요일 10:00-16:00",
			Image:       "/korea-map.svg",
			Description: "홍대 젊은 거리에 위치한 신뢰할 수 있는 금 매입 전문점입니다.",
			Features:    []string{"금 반지/목걸이 전문", "학생 할인 혜택", "온라인 시세 확인", "안전한 거래"},
			Lat:         37.5563059,
			Lng:         126.9220571,
		},
	}
}

func DefaultSlides() []models.Slide {
	return []models.Slide{
		{ID: 1, Image: "/korea-map.svg", Title: "최고가 매입 보장", Description: "시중 최고가로 귀하의 금을 매입해드립니다", Active: true},
		{ID: 2, Image: "/korea-map.svg", Title: "당일 현금 지급", Description: "감정 후 즉시 현금으로 지급해드립니다", Active: true},
		{ID: 3, Image: "/korea-map.svg", Title: "전문 감정사 상주", Description: "정확한 감정을 위한 전문가가 항상 대기합니다", Active: true},
	}
}

func DefaultContact() models.Contact {
	return models.Contact{
		Phone: models.PhoneContact{Number: "1588-1234", Hours: "평일 9:00-18:00"},
		Email: models.EmailContact{Address: "info@geumbaeksa.com", Hours: "24시간 접수"},
		Kakao: models.KakaoContact{ID: "@금박사", Hours: "평일 9:00-18:00"},
	}
}

func DefaultReviews() []models.Review {
	return []models.Review{
		{ID: 1, BranchID: 1, BranchName: "강남점", CustomerName: "김**", Rating: 5, IsActive: true,
			Comment: "정말 친절하고 공정한 시세로 거래해주셨어요. 다른 곳보다 훨씬 높은 가격에 매입해주셨습니다!"},
		{ID: 2, BranchID: 2, BranchName: "홍대점", CustomerName: "박**", Rating: 4, IsActive: true,
			Comment: "빠른 감정과 즉시 현금 지급으로 만족합니다. 직원분들도 매우 친절하세요."},
		{ID: 3, BranchID: 1, BranchName: "강남점", CustomerName: "최**", Rating: 5, IsActive: true,
			Comment: "여러 곳 비교해봤는데 여기가 가장 높은 가격 제시해주셨어요. 신뢰할 수 있는 업체입니다."},
	}
}

// Seed fills every empty collection with the default records and makes sure
// the contact record exists.
func Seed(ctx context.Context, s Store) error {
	if err := seedCollection(ctx, "branches", s.Branches(), DefaultBranches()); err != nil {
		return err
	}
	if err := seedCollection(ctx, "slides", s.Slides(), DefaultSlides()); err != nil {
		return err
	}
	if err := seedCollection[models.Review](ctx, "reviews", s.Reviews(), DefaultReviews()); err != nil {
		return err
	}
	if _, err := s.Contact().Get(ctx); err != nil {
		return fmt.Errorf("failed to seed contact: %w", err)
	}
	return nil
}

func seedCollection[T any](ctx context.Context, kind string, c Collection[T], rows []T) error {
	n, err := c.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", kind, err)
	}
	if n > 0 {
		return nil
	}

	for i := range rows {
		if err := c.Insert(ctx, &rows[i]); err != nil && !errors.Is(err, ErrExists) {
			return fmt.Errorf("failed to seed %s: %w", kind, err)
		}
	}
	log.Info().Str("kind", kind).Int("count", len(rows)).Msg("seeded default records")
	return nil
}
