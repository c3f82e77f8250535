package types

import "time"

// Period is the historical window a chart covers.
type Period string

const (
	OneDay    Period = "1d"
	FiveDays  Period = "5d"
	OneMonth  Period = "1mo"
	SixMonths Period = "6mo"
)

var PeriodToTime = map[Period]time.Duration{
	OneDay:    time.Hour * 24,
	FiveDays:  time.Hour * 24 * 5,
	OneMonth:  time.Hour * 24 * 30,
	SixMonths: time.Hour * 24 * 182,
}

var ConvertPeriod = map[string]Period{
	"1d":  OneDay,
	"5d":  FiveDays,
	"1mo": OneMonth,
	"6mo": SixMonths,
}
