package service

import (
	"sort"
	"time"

	"github.com/lifelens/backend/internal/models"
)

// extractFeatures converts the raw record streams for one analysis window
// into per-category aggregate statistics. Pure function of its inputs: no
// repository access, no mutation of the record slices beyond a defensive
// copy for sorting. Empty categories yield nil sections, not errors.
func extractFeatures(
	health []models.HealthRecord,
	mood []models.MoodRecord,
	financial []models.FinancialRecord,
	prayer []models.PrayerRecord,
) models.FeatureSet {
	return models.FeatureSet{
		Health:    extractHealthFeatures(health),
		Mood:      extractMoodFeatures(mood, health),
		Financial: extractFinancialFeatures(financial),
		Prayer:    extractPrayerFeatures(prayer),
	}
}

// extractHealthFeatures computes means and trends over the health stream.
func extractHealthFeatures(records []models.HealthRecord) *models.HealthFeatures {
	if len(records) == 0 {
		return nil
	}

	records = sortedByDate(records, func(r models.HealthRecord) time.Time { return r.Date })

	n := float64(len(records))
	features := &models.HealthFeatures{}

	steps := make([]float64, len(records))
	heartRates := make([]float64, len(records))
	sleeps := make([]float64, len(records))
	for i, r := range records {
		steps[i] = float64(r.Steps)
		heartRates[i] = float64(r.HeartRate)
		sleeps[i] = r.SleepDuration

		features.AvgSteps += float64(r.Steps)
		features.AvgHeartRate += float64(r.HeartRate)
		features.AvgSleepDuration += r.SleepDuration
		features.AvgActiveMinutes += float64(r.ActiveMinutes)
	}
	features.AvgSteps /= n
	features.AvgHeartRate /= n
	features.AvgSleepDuration /= n
	features.AvgActiveMinutes /= n

	features.StepsTrend = trendSlope(steps)
	features.HeartRateTrend = trendSlope(heartRates)
	features.SleepTrend = trendSlope(sleeps)

	// Aggregate activity minutes across all records that report them.
	distribution := make(map[string]int)
	for _, r := range records {
		for activity, minutes := range r.ActivityTypes {
			distribution[activity] += minutes
		}
	}
	if len(distribution) > 0 {
		features.ActivityDistribution = distribution
	}

	return features
}

// extractMoodFeatures computes mood statistics plus correlations against
// the health stream on overlapping days.
func extractMoodFeatures(records []models.MoodRecord, health []models.HealthRecord) *models.MoodFeatures {
	if len(records) == 0 {
		return nil
	}

	records = sortedByDate(records, func(r models.MoodRecord) time.Time { return r.Date })

	scores := make([]float64, len(records))
	var triggers, coping []string
	for i, r := range records {
		scores[i] = float64(r.MoodScore)
		triggers = append(triggers, r.Triggers...)
		coping = append(coping, r.CopingMechanisms...)
	}

	var avg float64
	for _, s := range scores {
		avg += s
	}
	avg /= float64(len(scores))

	features := &models.MoodFeatures{
		AvgMood:         avg,
		MoodVariability: variability(scores),
		MoodTrend:       trendSlope(scores),
		CommonTriggers:  rankItems(triggers),
		CommonCoping:    rankItems(coping),
	}

	// Pair mood scores with health metrics by calendar day.
	if len(health) > 0 {
		healthByDay := make(map[string]models.HealthRecord, len(health))
		for _, h := range health {
			healthByDay[h.Date.Format("2006-01-02")] = h
		}

		var pairedMood, pairedSteps, pairedSleep []float64
		for _, r := range records {
			if h, ok := healthByDay[r.Date.Format("2006-01-02")]; ok {
				pairedMood = append(pairedMood, float64(r.MoodScore))
				pairedSteps = append(pairedSteps, float64(h.Steps))
				pairedSleep = append(pairedSleep, h.SleepDuration)
			}
		}
		features.StepsCorrelation = pearsonCorrelation(pairedMood, pairedSteps)
		features.SleepCorrelation = pearsonCorrelation(pairedMood, pairedSleep)
	}

	return features
}

// extractFinancialFeatures computes income/expense statistics and the
// recurring-expense grouping.
func extractFinancialFeatures(records []models.FinancialRecord) *models.FinancialFeatures {
	if len(records) == 0 {
		return nil
	}

	records = sortedByDate(records, func(r models.FinancialRecord) time.Time { return r.Date })

	var incomeTotal, expenseTotal float64
	var incomeCount, expenseCount int
	expensesByCategory := make(map[string]float64)
	recurring := make(map[string]*models.RecurringExpense)
	var recurringKeys []string

	for _, r := range records {
		if r.IsIncome {
			incomeTotal += r.Amount
			incomeCount++
			continue
		}

		expenseTotal += r.Amount
		expenseCount++
		if r.Category != "" {
			expensesByCategory[r.Category] += r.Amount
		}

		if r.RecurringType == nil {
			continue
		}
		key := *r.RecurringType + "|" + r.Category
		group, ok := recurring[key]
		if !ok {
			group = &models.RecurringExpense{
				RecurringType: *r.RecurringType,
				Category:      r.Category,
			}
			recurring[key] = group
			recurringKeys = append(recurringKeys, key)
		}
		group.Count++
		group.TotalAmount += r.Amount
		group.AvgAmount = group.TotalAmount / float64(group.Count)
	}

	avgIncome := incomeTotal / float64(max(incomeCount, 1))
	avgExpense := expenseTotal / float64(max(expenseCount, 1))

	savingsRate := 0.0
	if avgIncome > 0 {
		savingsRate = (avgIncome - avgExpense) / avgIncome
	}

	// Preserve first-seen order of recurring groups.
	recurringExpenses := make([]models.RecurringExpense, 0, len(recurringKeys))
	for _, key := range recurringKeys {
		recurringExpenses = append(recurringExpenses, *recurring[key])
	}

	return &models.FinancialFeatures{
		AvgIncome:          avgIncome,
		AvgExpense:         avgExpense,
		SavingsRate:        savingsRate,
		ExpensesByCategory: expensesByCategory,
		RecurringExpenses:  recurringExpenses,
	}
}

// extractPrayerFeatures computes completion statistics and the per-type and
// per-weekday breakdowns.
func extractPrayerFeatures(records []models.PrayerRecord) *models.PrayerFeatures {
	if len(records) == 0 {
		return nil
	}

	records = sortedByDate(records, func(r models.PrayerRecord) time.Time { return r.Date })

	byType := make(map[string]models.PrayerTypeStats)
	byWeekday := make(map[time.Weekday]models.WeekdayStats)
	var completed int
	var completedDuration float64

	for _, r := range records {
		stats := byType[r.PrayerType]
		stats.Count++
		if r.Completed {
			stats.Completed++
		}
		if r.DurationMinutes != nil {
			stats.TotalDuration += float64(*r.DurationMinutes)
			stats.AvgDuration = stats.TotalDuration / float64(stats.Count)
		}
		byType[r.PrayerType] = stats

		day := byWeekday[r.Date.Weekday()]
		day.Count++
		if r.Completed {
			day.Completed++
		}
		byWeekday[r.Date.Weekday()] = day

		if r.Completed {
			completed++
			if r.DurationMinutes != nil {
				completedDuration += float64(*r.DurationMinutes)
			}
		}
	}

	// Average duration over completed entries only.
	avgDuration := completedDuration / float64(max(completed, 1))

	weekdayCounts := make([]float64, 7)
	for day, stats := range byWeekday {
		weekdayCounts[int(day)] = float64(stats.Completed)
	}

	return &models.PrayerFeatures{
		CompletionRate:     float64(completed) / float64(len(records)),
		ByType:             byType,
		ByWeekday:          byWeekday,
		AvgDuration:        avgDuration,
		WeekdayConsistency: consistency(weekdayCounts),
	}
}

// sortedByDate returns a copy of records ordered ascending by date. The
// repositories already order results, but extraction stays correct for any
// caller-supplied slice.
func sortedByDate[T any](records []T, date func(T) time.Time) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return date(sorted[i]).Before(date(sorted[j]))
	})
	return sorted
}
