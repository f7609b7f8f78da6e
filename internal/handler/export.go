package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/scheduler"
)

// exportCalendar 生成司机的日历文本；grid 为空时导出全部条目
func (h *Handler) exportCalendar(driverID int64, grid *scheduler.Grid) (string, int, error) {
	entries, err := h.loadEntries(driverID)
	if err != nil {
		return "", 0, err
	}
	if grid != nil {
		entries = grid.EntriesInWeek(entries)
	}

	jobs, err := h.repository.GetJobsByDriverID(driverID)
	if err != nil {
		return "", 0, err
	}
	jobMap := make(map[int64]*domain.Job, len(jobs))
	for _, job := range jobs {
		jobMap[job.ID] = job
	}

	events := make([]calendar.Event, 0, len(entries))
	for _, entry := range entries {
		events = append(events, calendar.NewEvent(entry, jobMap[entry.JobID]))
	}

	return h.exporter.Export(events), len(events), nil
}

func calendarFileName(grid *scheduler.Grid) string {
	if grid == nil {
		return "schedule.ics"
	}
	return fmt.Sprintf("schedule-%s.ics", grid.WeekStart.Format(time.DateOnly))
}

func (h *Handler) ExportMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)
	grid, _ := r.Context().Value(GridCtx).(*scheduler.Grid)

	content, _, err := h.exportCalendar(myInfo.ID, grid)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeCalendar(w, r, calendarFileName(grid), content)
}

func (h *Handler) MailMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)
	grid, _ := r.Context().Value(GridCtx).(*scheduler.Grid)

	content, count, err := h.exportCalendar(myInfo.ID, grid)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := domain.ScheduleExportMailData{
		FullName:   myInfo.FullName,
		EntryCount: count,
		Calendar:   content,
	}
	if grid != nil {
		data.WeekStart = grid.WeekStart.Format(time.DateOnly)
	}

	mailData, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeScheduleExport,
		To:   myInfo.Email,
		Data: data,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 发送邮件到消息队列中
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "排班日历已通过邮件发送", nil)
}
