package system

import (
	"context"
	"fmt"

	"github.com/Alijeyrad/health_companion/internal/repo"
)

const sampleRows = 5

type Report struct {
	Status string            `json:"status"`
	Tables []repo.TableStats `json:"tables"`
}

type Service interface {
	// Diagnose reports row counts and the newest rows of each table.
	Diagnose(ctx context.Context) (*Report, error)
	Ping(ctx context.Context) error
}

type systemService struct {
	client *repo.Client
}

func New(client *repo.Client) Service {
	return &systemService{client: client}
}

func (s *systemService) Diagnose(ctx context.Context) (*Report, error) {
	tables, err := s.client.Stats(ctx, sampleRows)
	if err != nil {
		return nil, fmt.Errorf("diagnose database: %w", err)
	}
	return &Report{Status: "success", Tables: tables}, nil
}

func (s *systemService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
