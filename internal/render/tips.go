package render

import "time"

var tips = []string{
	"Stretch your calves daily to reduce heel strain.",
	"Avoid wearing worn-out shoes for long walks; replace midsoles every ~300-500 miles.",
	"Alternate shoe types across the week to avoid repetitive stress.",
	"Check shoe fit in the evening when feet are slightly swollen.",
	"Use orthotic inserts if you have persistent arch pain (consult a professional).",
}

// Tips returns all foot-care tips
func Tips() []string {
	out := make([]string, len(tips))
	copy(out, tips)
	return out
}

// TipOfTheDay picks a tip by day of year, so it changes daily but not per call
func TipOfTheDay(t time.Time) string {
	return tips[t.YearDay()%len(tips)]
}
