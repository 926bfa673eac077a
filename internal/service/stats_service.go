package service

import (
	"context"
	"math"

	"civictide/internal/models"
	"civictide/internal/repository"
)

// StatsService aggregates counts across the report store for the admin
// dashboard.
type StatsService struct {
	reports repository.ReportRepository
	users   repository.UserRepository
}

// NewStatsService wires a StatsService.
func NewStatsService(reports repository.ReportRepository, users repository.UserRepository) *StatsService {
	return &StatsService{reports: reports, users: users}
}

// DashboardStats is the admin dashboard summary payload.
type DashboardStats struct {
	TotalReports   int64                           `json:"total_reports"`
	TotalUsers     int64                           `json:"total_users"`
	ByStatus       map[models.ReportStatus]int64   `json:"by_status"`
	ByCategory     map[models.ReportCategory]int64 `json:"by_category"`
	ResolutionRate float64                         `json:"resolution_rate"`
}

// Dashboard computes the summary: total reports, total citizen accounts,
// per-status and per-category breakdowns, and the resolution rate.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	totalReports, err := s.reports.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.CountCitizens(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.reports.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	// Statuses with no reports still appear with a zero count.
	for _, status := range models.AllStatuses {
		if _, ok := byStatus[status]; !ok {
			byStatus[status] = 0
		}
	}

	return &DashboardStats{
		TotalReports:   totalReports,
		TotalUsers:     totalUsers,
		ByStatus:       byStatus,
		ByCategory:     byCategory,
		ResolutionRate: ResolutionRate(byStatus[models.StatusResolved], totalReports),
	}, nil
}

// ResolutionRate is the share of all reports that are resolved, as a
// percentage rounded to one decimal place. Zero when there are no reports.
func ResolutionRate(resolved, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(resolved)/float64(total)*1000) / 10
}
