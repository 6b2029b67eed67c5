package domain

// Stats is the admin dashboard rollup. TotalRevenue sums total_price over
// confirmed bookings only; pending, cancelled and completed are excluded.
type Stats struct {
	TotalUsers      int64   `db:"total_users" json:"total_users"`
	TotalBookings   int64   `db:"total_bookings" json:"total_bookings"`
	PendingBookings int64   `db:"pending_bookings" json:"pending_bookings"`
	UnreadMessages  int64   `db:"unread_messages" json:"unread_messages"`
	TotalRevenue    float64 `db:"total_revenue" json:"total_revenue"`
}
