package dto

// DashboardResponse dikirim apa adanya per role; field yang tidak relevan
// untuk role tsb di-omit supaya payload tetap kecil.
type DashboardResponse struct {
	Role        string `json:"role"`
	UnreadCount int64  `json:"unread_count"`

	// student
	MyReports      *int64 `json:"my_reports,omitempty"`
	MySubmissions  *int64 `json:"my_submissions,omitempty"`
	OpenTasks      *int64 `json:"open_tasks,omitempty"`

	// parent
	LinkedChildren *int64 `json:"linked_children,omitempty"`
	ChildIncidents *int64 `json:"child_incidents,omitempty"`

	// teacher / director
	PendingReports *int64 `json:"pending_reports,omitempty"`
	ActiveAlerts   *int64 `json:"active_alerts,omitempty"`
	MyTasks        *int64 `json:"my_tasks,omitempty"`
}

type DirectorPanelResponse struct {
	Students        int64            `json:"students"`
	Teachers        int64            `json:"teachers"`
	Parents         int64            `json:"parents"`
	ReportsByStatus map[string]int64 `json:"reports_by_status"`
	ActiveAlerts    int64            `json:"active_alerts"`
	IncidentsTotal  int64            `json:"incidents_total"`
	TasksTotal      int64            `json:"tasks_total"`
}
