package model

// DailyProgress is one bucket of the trailing-week completion histogram.
// Day is the short weekday name ("Mon".."Sun").
type DailyProgress struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}
