package entities

// MemberCountRow is scanned from the admin dashboard aggregate queries.
type MemberCountRow struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// DashboardSummary aggregates community-wide counts for the admin dashboard.
type DashboardSummary struct {
	TotalMembers     int `json:"total_members"`
	PendingMembers   int `json:"pending_members"`
	ApprovedMembers  int `json:"approved_members"`
	SuspendedMembers int `json:"suspended_members"`
	TotalGroups      int `json:"total_groups"`
	UpcomingEvents   int `json:"upcoming_events"`
	PublishedPosts   int `json:"published_posts"`
	OpenPrayers      int `json:"open_prayers"`
}
