package entities

// DayCount is one bar of the reservations overview chart.
type DayCount struct {
	Label string `json:"name"`
	Total int    `json:"total"`
}

// DashboardSummary feeds the dashboard cards and chart.
type DashboardSummary struct {
	TotalCustomers       int
	NewCustomersMonth    int
	TotalReservations    int
	UpcomingReservations int
	LastSevenDays        []DayCount
}

// MaxDay returns the largest bucket, used to scale the bars.
func (s DashboardSummary) MaxDay() int {
	max := 0
	for _, d := range s.LastSevenDays {
		if d.Total > max {
			max = d.Total
		}
	}
	return max
}
