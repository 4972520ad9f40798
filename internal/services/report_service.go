package services

import (
	"context"
	"time"

	"prodx/internal/domain"
	applog "prodx/internal/log"
	"prodx/internal/metrics"
	"prodx/internal/repos"
)

var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ReportService computes the dashboard aggregates. Nothing is cached;
// every call reads the store.
type ReportService struct {
	Products *repos.ProductRepo
	Buckets  domain.BucketMap
	Now      func() time.Time
}

func NewReportService(products *repos.ProductRepo, buckets domain.BucketMap) *ReportService {
	return &ReportService{Products: products, Buckets: buckets, Now: time.Now}
}

// Stored timestamps are UTC (CURRENT_TIMESTAMP), so the calendar is too.
func (s *ReportService) now() time.Time { return s.Now().UTC() }

func (s *ReportService) CurrentYear() int { return s.now().Year() }

// MonthlyApprovals counts Confirmed products per month of year; index 0 is January.
func (s *ReportService) MonthlyApprovals(ctx context.Context, year int) ([12]int, error) {
	defer observe("monthly_approvals", time.Now())
	var out [12]int
	rows, err := s.Products.CountByMonth(ctx, domain.StatusConfirmed, year)
	if err != nil {
		return out, err
	}
	for _, r := range rows {
		if r.Month >= 1 && r.Month <= 12 {
			out[r.Month-1] = r.Count
		}
	}
	return out, nil
}

// StatusCounts folds the per-status totals into the three tiles.
func (s *ReportService) StatusCounts(ctx context.Context) (domain.StatusCounts, error) {
	defer observe("status_counts", time.Now())
	var counts domain.StatusCounts
	rows, err := s.Products.CountByStatus(ctx)
	if err != nil {
		return counts, err
	}
	for _, r := range rows {
		b, ok := s.Buckets.For(r.Status)
		if !ok {
			applog.Warn(nil, "report.status.unknown", nil, map[string]any{"status": int(r.Status), "total": r.Total})
			continue
		}
		counts.Add(b, r.Total)
	}
	return counts, nil
}

// AvailableYears lists every year from the oldest submission through the
// current year, ascending.
func (s *ReportService) AvailableYears(ctx context.Context) ([]int, error) {
	defer observe("available_years", time.Now())
	current := s.CurrentYear()
	minYear, ok, err := s.Products.MinYear(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || minYear > current {
		return []int{current}, nil
	}
	years := make([]int, 0, current-minYear+1)
	for y := minYear; y <= current; y++ {
		years = append(years, y)
	}
	return years, nil
}

// Analytics is everything the analytics page shows for one year.
type Analytics struct {
	Year                 int
	Years                []int
	Monthly              [12]int
	MonthLabels          [12]string
	TotalApproved        int
	CurrentMonthApproved int
	Counts               domain.StatusCounts
}

func (s *ReportService) Analytics(ctx context.Context, year int) (Analytics, error) {
	a := Analytics{Year: year, MonthLabels: MonthLabels}
	var err error
	if a.Monthly, err = s.MonthlyApprovals(ctx, year); err != nil {
		return a, err
	}
	if a.Years, err = s.AvailableYears(ctx); err != nil {
		return a, err
	}
	if a.Counts, err = s.StatusCounts(ctx); err != nil {
		return a, err
	}
	for _, n := range a.Monthly {
		a.TotalApproved += n
	}
	now := s.now()
	if year == now.Year() {
		a.CurrentMonthApproved = a.Monthly[int(now.Month())-1]
	}
	return a, nil
}

func observe(report string, start time.Time) {
	metrics.ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}
