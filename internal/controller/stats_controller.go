package controller

import (
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
)

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	Destinations  int                      `json:"destinations"`
	Hotels        int                      `json:"hotels"`
	Activities    int                      `json:"activities"`
	Themes        int                      `json:"themes"`
	Bookings      int                      `json:"bookings"`
	Leads         int                      `json:"leads"`
	LeadsByStatus map[model.LeadStatus]int `json:"leads_by_status"`
	RecentLeads   []model.Lead             `json:"recent_leads"`
}

const recentLeadLimit = 5

type StatsController struct {
	repos repository.Repositories
}

func NewStatsController(repos repository.Repositories) *StatsController {
	return &StatsController{repos: repos}
}

// GetDashboardStats reports collection sizes. Any store failure fails the call
// so the dashboard never shows zeros for an unreachable backend.
func (ctl *StatsController) GetDashboardStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var stats DashboardStats
	var err error

	counters := []struct {
		target *int
		count  func() (int, error)
	}{
		{&stats.Destinations, func() (int, error) { return ctl.repos.Destinations.Count(ctx) }},
		{&stats.Hotels, func() (int, error) { return ctl.repos.Hotels.Count(ctx) }},
		{&stats.Activities, func() (int, error) { return ctl.repos.Activities.Count(ctx) }},
		{&stats.Themes, func() (int, error) { return ctl.repos.Themes.Count(ctx) }},
		{&stats.Bookings, func() (int, error) { return ctl.repos.Bookings.Count(ctx) }},
		{&stats.Leads, func() (int, error) { return ctl.repos.Leads.Count(ctx) }},
	}
	for _, counter := range counters {
		if *counter.target, err = counter.count(); err != nil {
			return fail(c, err, "Could not fetch dashboard stats")
		}
	}

	if stats.LeadsByStatus, err = ctl.repos.Leads.CountByStatus(ctx); err != nil {
		return fail(c, err, "Could not fetch dashboard stats")
	}

	stats.RecentLeads = ctl.repos.Leads.List(ctx, repository.LeadFilter{})
	if len(stats.RecentLeads) > recentLeadLimit {
		stats.RecentLeads = stats.RecentLeads[:recentLeadLimit]
	}

	return c.JSON(stats)
}
