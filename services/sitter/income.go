package sitter

import (
	"context"

	"petsitter/models"
	"petsitter/utils"
)

// IncomeStats totals the sitter's paid, non-cancelled bookings, grouped per day and service type.
func (s *DefaultSitterService) IncomeStats(ctx context.Context, sitterID string) (*models.IncomeStats, error) {
	bookings, err := s.Bookings.ListPaidBySitter(ctx, sitterID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load paid bookings", err)
	}

	out := &models.IncomeStats{IncomeStats: []models.IncomeEntry{}}
	index := map[string]int{}
	names := map[string]string{}

	for _, b := range bookings {
		name, ok := names[b.ServiceTypeID]
		if !ok {
			name, err = s.Taxonomy.ServiceTypeName(ctx, b.ServiceTypeID)
			if err != nil {
				return nil, err
			}
			names[b.ServiceTypeID] = name
		}

		day := b.StartTime.Format("2006-01-02")
		key := day + "|" + name
		i, ok := index[key]
		if !ok {
			out.IncomeStats = append(out.IncomeStats, models.IncomeEntry{
				BookingDate: day,
				ShortName:   name,
				StartTime:   b.StartTime,
				EndTime:     b.EndTime,
			})
			i = len(out.IncomeStats) - 1
			index[key] = i
		}

		entry := &out.IncomeStats[i]
		entry.TotalIncome = utils.RoundCurrency(entry.TotalIncome + b.TotalPrice)
		if b.StartTime.Before(entry.StartTime) {
			entry.StartTime = b.StartTime
		}
		if b.EndTime.After(entry.EndTime) {
			entry.EndTime = b.EndTime
		}

		out.Stats.TotalIncome = utils.RoundCurrency(out.Stats.TotalIncome + b.TotalPrice)
		out.Stats.TotalJobs++
	}
	return out, nil
}
