package types

import "time"

type Interval string

const (
	OneMinute      Interval = "1m"
	FiveMinutes    Interval = "5m"
	FifteenMinutes Interval = "15m"
	Hour           Interval = "1h"
	Day            Interval = "1d"
)

var IntervalToTime = map[Interval]time.Duration{
	OneMinute:      time.Minute,
	FiveMinutes:    time.Minute * 5,
	FifteenMinutes: time.Minute * 15,
	Hour:           time.Hour,
	Day:            time.Hour * 24,
}

var ConvertInterval = map[string]Interval{
	"1m":  OneMinute,
	"5m":  FiveMinutes,
	"15m": FifteenMinutes,
	"1h":  Hour,
	"1d":  Day,
}
