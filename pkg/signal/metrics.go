package signal

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/umputun/newsradar/pkg/domain"
)

var (
	moneyRe = regexp.MustCompile(`(?i)\$\s?([0-9]+(?:\.[0-9]+)?)\s?(B|M|K|billion|million|thousand)?`)
	sqftRe  = regexp.MustCompile(`(?i)([0-9][0-9,]{2,})\s?(sq\.?\s?ft\.?|square\s+feet|sf)`)
	jobsRe  = regexp.MustCompile(`(?i)([0-9][0-9,]{1,})\s+(jobs|job)`)
)

// ExtractMetrics pulls numeric figures (investment amount, square footage,
// job count) out of free text. All fields are best-effort and nullable.
func ExtractMetrics(parts ...string) domain.Metrics {
	text := strings.Join(parts, " ")

	out := domain.Metrics{}
	if m := moneyRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			switch strings.ToLower(m[2]) {
			case "b", "billion":
				v *= 1_000_000_000
			case "m", "million":
				v *= 1_000_000
			case "k", "thousand":
				v *= 1_000
			}
			out.InvestmentUSD = &v
		}
	}
	if m := sqftRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			out.SquareFeet = &v
		}
	}
	if m := jobsRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			out.Jobs = &v
		}
	}
	return out
}
