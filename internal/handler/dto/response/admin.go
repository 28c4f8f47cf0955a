package response

import "decor-booking/internal/usecase/queries"

type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	TotalCount int64           `json:"totalCount"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

func FromUserPage(p *queries.UserPage) *UserListResponse {
	users := make([]*UserResponse, 0, len(p.Items))
	for _, v := range p.Items {
		users = append(users, FromUserView(v))
	}
	return &UserListResponse{
		Users:      users,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

type MonthlyRevenueResponse struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bookings int64   `json:"bookings"`
}

type AnalyticsResponse struct {
	TotalBookings    int64                    `json:"totalBookings"`
	BookingsByStatus map[string]int64         `json:"bookingsByStatus"`
	UsersByRole      map[string]int64         `json:"usersByRole"`
	TotalRevenue     float64                  `json:"totalRevenue"`
	TotalRefunded    float64                  `json:"totalRefunded"`
	MonthlyRevenue   []MonthlyRevenueResponse `json:"monthlyRevenue"`
	Currency         string                   `json:"currency"`
}

func FromAnalytics(a *queries.Analytics) *AnalyticsResponse {
	monthly := make([]MonthlyRevenueResponse, 0, len(a.Revenue))
	for _, m := range a.Revenue {
		monthly = append(monthly, MonthlyRevenueResponse{
			Month:    m.Month,
			Revenue:  centsToAmount(m.RevenueCents),
			Bookings: m.Bookings,
		})
	}
	return &AnalyticsResponse{
		TotalBookings:    a.TotalBookings,
		BookingsByStatus: a.BookingsByStatus,
		UsersByRole:      a.UsersByRole,
		TotalRevenue:     centsToAmount(a.PaidCents),
		TotalRefunded:    centsToAmount(a.RefundedCents),
		MonthlyRevenue:   monthly,
		Currency:         a.Currency,
	}
}
