package dto

type DayCount struct {
	Day   string
	Count int
}

type SummaryOutput struct {
	TotalCredits int
	TotalClasses int
	PerDay       []DayCount
	BusiestDay   string
	AverageHours float64
	Morning      int
	Afternoon    int
	Evening      int
}
