// Package survey compares two longitude strategies day by day and reports
// how often they put a birth date in the same mansion.
package survey

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"sukuyo/domain/mansion"
	"sukuyo/internal/errors"
	"sukuyo/ports"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxDays bounds a single survey run
const MaxDays = 200 * 366

// DefaultConcurrency is used when Options.Concurrency is not positive
const DefaultConcurrency = 8

// Options selects the date range. Both ends are inclusive calendar days;
// each day is sampled at noon in Location.
type Options struct {
	From        time.Time
	To          time.Time
	Location    *time.Location
	Concurrency int
}

// Sample is one surveyed day
type Sample struct {
	Date       string  `json:"date"`
	Reference  float64 `json:"reference"`
	Candidate  float64 `json:"candidate"`
	RefIndex   int     `json:"ref_index"`
	CandIndex  int     `json:"cand_index"`
	Difference float64 `json:"difference"`
	Agree      bool    `json:"agree"`
}

// Summary holds descriptive statistics of the angular difference in degrees
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// Uniformity is a chi-square goodness-of-fit of the reference strategy's
// primary mansions against an even spread over the cycle
type Uniformity struct {
	Counts    [mansion.CycleLength]int `json:"counts"`
	ChiSquare float64                  `json:"chi_square"`
	PValue    float64                  `json:"p_value"`
}

// Report is the result of one run
type Report struct {
	Reference  string     `json:"reference"`
	Candidate  string     `json:"candidate"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Days       int        `json:"days"`
	Agreement  float64    `json:"agreement"`
	Difference Summary    `json:"difference"`
	Uniformity Uniformity `json:"uniformity"`
	Samples    []Sample   `json:"samples"`
}

// Run evaluates both strategies for every day in the range
func Run(ctx context.Context, reference, candidate ports.Ephemeris, opts Options) (*Report, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	from := day(opts.From, loc)
	to := day(opts.To, loc)
	if to.Before(from) {
		return nil, errors.InvalidInput(fmt.Sprintf("survey range ends before it starts: %s > %s",
			from.Format(time.DateOnly), to.Format(time.DateOnly)))
	}

	days := daysBetween(from, to) + 1
	if days > MaxDays {
		return nil, errors.InvalidInput(fmt.Sprintf("survey range too long: %d days (max %d)", days, MaxDays))
	}

	workers := opts.Concurrency
	if workers <= 0 {
		workers = DefaultConcurrency
	}

	samples := make([]Sample, days)
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i := 0; i < days; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, errors.Wrap(err, "survey cancelled")
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			at := time.Date(from.Year(), from.Month(), from.Day()+i, 12, 0, 0, 0, loc)
			samples[i] = sample(at, reference, candidate)
		}(i)
	}
	wg.Wait()

	report := &Report{
		Reference: reference.Name(),
		Candidate: candidate.Name(),
		From:      from.Format(time.DateOnly),
		To:        to.Format(time.DateOnly),
		Days:      days,
		Samples:   samples,
	}
	if err := report.summarize(); err != nil {
		return nil, errors.Wrap(err, "failed to summarize survey")
	}
	return report, nil
}

func sample(at time.Time, reference, candidate ports.Ephemeris) Sample {
	ref := mansion.Normalize(reference.Longitude(at))
	cand := mansion.Normalize(candidate.Longitude(at))
	s := Sample{
		Date:       at.Format(time.DateOnly),
		Reference:  ref,
		Candidate:  cand,
		RefIndex:   mansion.PrimaryIndex(ref),
		CandIndex:  mansion.PrimaryIndex(cand),
		Difference: AngularDistance(ref, cand),
	}
	s.Agree = s.RefIndex == s.CandIndex
	return s
}

func (r *Report) summarize() error {
	diffs := make([]float64, len(r.Samples))
	agree := 0
	for i, s := range r.Samples {
		diffs[i] = s.Difference
		if s.Agree {
			agree++
		}
		r.Uniformity.Counts[s.RefIndex]++
	}
	r.Agreement = float64(agree) / float64(len(r.Samples))

	var err error
	if r.Difference.Mean, err = stats.Mean(diffs); err != nil {
		return err
	}
	if r.Difference.StdDev, err = stats.StandardDeviation(diffs); err != nil {
		return err
	}
	if r.Difference.Median, err = stats.Median(diffs); err != nil {
		return err
	}
	if r.Difference.P90, err = stats.Percentile(diffs, 90); err != nil {
		return err
	}
	if r.Difference.Max, err = stats.Max(diffs); err != nil {
		return err
	}

	r.Uniformity.ChiSquare, r.Uniformity.PValue = chiSquareUniform(r.Uniformity.Counts[:])
	return nil
}

// chiSquareUniform tests observed counts against an even spread
func chiSquareUniform(counts []int) (statistic, pValue float64) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(counts) < 2 {
		return 0, 1
	}

	expected := float64(total) / float64(len(counts))
	for _, c := range counts {
		d := float64(c) - expected
		statistic += d * d / expected
	}

	chi := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return statistic, 1 - chi.CDF(statistic)
}

// AngularDistance is the shorter arc between two longitudes, in [0, 180]
func AngularDistance(a, b float64) float64 {
	d := math.Abs(mansion.Normalize(a) - mansion.Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days, immune to DST-length days
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((b.Unix() - a.Unix()) / 86400)
}
