package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

type Event struct {
	JobID       int64
	StartAt     time.Time
	EndAt       time.Time
	Title       string
	Description string
}

// NewEvent 由排班条目及其任务生成日历事件，job 可以为空
func NewEvent(entry domain.ScheduleEntry, job *domain.Job) Event {
	event := Event{
		JobID:   entry.JobID,
		StartAt: entry.StartAt,
		EndAt:   entry.EndAt,
	}

	var parts []string
	if job != nil {
		event.Title = job.Title
		if job.Vehicle != "" {
			parts = append(parts, "车辆: "+job.Vehicle)
		}
		if job.Company != "" {
			parts = append(parts, "公司: "+job.Company)
		}
	}
	if entry.Note != nil && *entry.Note != "" {
		parts = append(parts, "备注: "+*entry.Note)
	}
	event.Description = strings.Join(parts, "\n")

	return event
}

type Exporter struct {
	productID string
	uidDomain string
	ids       IDGenerator
	now       func() time.Time
}

func NewExporter(productID, uidDomain string, ids IDGenerator, now func() time.Time) *Exporter {
	if ids == nil {
		ids = RandomIDGenerator{}
	}
	if now == nil {
		now = time.Now
	}

	return &Exporter{
		productID: productID,
		uidDomain: uidDomain,
		ids:       ids,
		now:       now,
	}
}

// Export 将事件序列化为 iCalendar 文本，每个事件对应一个 VEVENT，时间统一为 UTC
func (e *Exporter) Export(events []Event) string {
	cal := ics.NewCalendar()
	cal.SetProductId(e.productID)
	cal.SetMethod(ics.MethodPublish)

	stamp := e.now().UTC()
	for _, ev := range events {
		event := cal.AddEvent(fmt.Sprintf("job-%d-%s@%s", ev.JobID, e.ids.NewID(), e.uidDomain))
		event.SetDtStampTime(stamp)
		event.SetStartAt(ev.StartAt.UTC())
		event.SetEndAt(ev.EndAt.UTC())

		if title := singleLine(ev.Title); title != "" {
			event.SetSummary(title)
		}
		if description := singleLine(ev.Description); description != "" {
			event.SetDescription(description)
		}
	}

	return cal.Serialize()
}

// 每个字段只能占一行
var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func singleLine(s string) string {
	return strings.TrimSpace(newlineReplacer.Replace(s))
}
