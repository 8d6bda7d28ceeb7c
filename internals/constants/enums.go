package constants

// Semua enum di file ini adalah wire contract (tersimpan di kolom DB dan
// dikirim apa adanya ke client). Label display di-resolve lewat fungsi
// mapping eksplisit — bukan fallback string — supaya case yang hilang
// ketahuan saat review, bukan diam-diam jadi kosong.

// ==========================
// Report
// ==========================
const (
	ReportCategoryBullying      = "bullying"
	ReportCategoryVerbal        = "verbal"
	ReportCategoryPhysical      = "physical"
	ReportCategorySexual        = "sexual"
	ReportCategoryCyberbullying = "cyberbullying"
	ReportCategoryTheft         = "theft"
	ReportCategoryOther         = "other"
)

var ReportCategories = []string{
	ReportCategoryBullying,
	ReportCategoryVerbal,
	ReportCategoryPhysical,
	ReportCategorySexual,
	ReportCategoryCyberbullying,
	ReportCategoryTheft,
	ReportCategoryOther,
}

const (
	ReportStatusPending   = "pending"
	ReportStatusInReview  = "in_review"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

var ReportStatuses = []string{
	ReportStatusPending,
	ReportStatusInReview,
	ReportStatusResolved,
	ReportStatusDismissed,
}

// ReportCategoryLabel: mapping eksplisit & exhaustive. Kategori tak dikenal
// mengembalikan ok=false — caller wajib memperlakukannya sebagai input invalid.
func ReportCategoryLabel(category string) (string, bool) {
	switch category {
	case ReportCategoryBullying:
		return "Bullying", true
	case ReportCategoryVerbal:
		return "Violencia verbal", true
	case ReportCategoryPhysical:
		return "Violencia física", true
	case ReportCategorySexual:
		return "Violencia sexual", true
	case ReportCategoryCyberbullying:
		return "Ciberacoso", true
	case ReportCategoryTheft:
		return "Robo", true
	case ReportCategoryOther:
		return "Otro", true
	}
	return "", false
}

func ReportStatusLabel(status string) (string, bool) {
	switch status {
	case ReportStatusPending:
		return "Pendiente", true
	case ReportStatusInReview:
		return "En revisión", true
	case ReportStatusResolved:
		return "Resuelto", true
	case ReportStatusDismissed:
		return "Descartado", true
	}
	return "", false
}

func IsValidReportCategory(v string) bool {
	_, ok := ReportCategoryLabel(v)
	return ok
}

func IsValidReportStatus(v string) bool {
	_, ok := ReportStatusLabel(v)
	return ok
}

// ==========================
// Panic alert
// ==========================
const (
	PanicStatusActive     = "active"
	PanicStatusAttended   = "attended"
	PanicStatusFalseAlarm = "false_alarm"
)

func PanicStatusLabel(status string) (string, bool) {
	switch status {
	case PanicStatusActive:
		return "Activa", true
	case PanicStatusAttended:
		return "Atendida", true
	case PanicStatusFalseAlarm:
		return "Falsa alarma", true
	}
	return "", false
}

func IsValidPanicStatus(v string) bool {
	_, ok := PanicStatusLabel(v)
	return ok
}

// ==========================
// Incident
// ==========================
const (
	IncidentTypeConduct    = "conduct"
	IncidentTypeAcademic   = "academic"
	IncidentTypeAttendance = "attendance"
	IncidentTypePositive   = "positive"
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

func IncidentTypeLabel(t string) (string, bool) {
	switch t {
	case IncidentTypeConduct:
		return "Conducta", true
	case IncidentTypeAcademic:
		return "Académico", true
	case IncidentTypeAttendance:
		return "Asistencia", true
	case IncidentTypePositive:
		return "Positivo", true
	}
	return "", false
}

func SeverityLabel(s string) (string, bool) {
	switch s {
	case SeverityMild:
		return "Leve", true
	case SeverityModerate:
		return "Moderado", true
	case SeveritySevere:
		return "Grave", true
	}
	return "", false
}

func IsValidIncidentType(v string) bool {
	_, ok := IncidentTypeLabel(v)
	return ok
}

func IsValidSeverity(v string) bool {
	_, ok := SeverityLabel(v)
	return ok
}

// ==========================
// Notification
// ==========================
const (
	NotificationTypePanicAlert          = "panic_alert"
	NotificationTypeNewReport           = "new_report"
	NotificationTypeIncidentRegistered  = "incident_registered"
	NotificationTypeNewTask             = "new_task"
	NotificationTypeReportStatusChanged = "report_status_changed"
)
