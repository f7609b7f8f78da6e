package domain

const MailTypeScheduleExport = "schedule_export"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ScheduleExportMailData struct {
	FullName   string `json:"fullName"`
	WeekStart  string `json:"weekStart"`
	EntryCount int    `json:"entryCount"`
	Calendar   string `json:"calendar"`
}
