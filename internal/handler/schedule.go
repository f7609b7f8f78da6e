package handler

import (
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/utils"
)

type entryView struct {
	domain.ScheduleEntry
	Placement scheduler.Placement `json:"placement"`
	Conflict  bool                `json:"conflict"`
}

type weekView struct {
	WeekStart   time.Time   `json:"weekStart"`
	StartHour   int         `json:"startHour"`
	EndHour     int         `json:"endHour"`
	SlotMinutes int         `json:"slotMinutes"`
	SlotsPerDay int         `json:"slotsPerDay"`
	Entries     []entryView `json:"entries"`
}

func (h *Handler) buildWeekView(grid *scheduler.Grid, entries []domain.ScheduleEntry) weekView {
	inWeek := grid.EntriesInWeek(entries)
	conflicts := scheduler.DetectConflicts(inWeek, h.parameters.Location)

	views := make([]entryView, 0, len(inWeek))
	for i, entry := range inWeek {
		views = append(views, entryView{
			ScheduleEntry: entry,
			Placement:     grid.PlacementOf(entry),
			Conflict:      conflicts[i],
		})
	}

	return weekView{
		WeekStart:   grid.WeekStart,
		StartHour:   grid.StartHour,
		EndHour:     grid.EndHour,
		SlotMinutes: grid.SlotMinutes,
		SlotsPerDay: grid.SlotsPerDay(),
		Entries:     views,
	}
}

func (h *Handler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)
	grid := r.Context().Value(GridCtx).(*scheduler.Grid)

	entries, err := h.loadEntries(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班成功", h.buildWeekView(grid, entries))
}

func (h *Handler) GetDriverSchedule(w http.ResponseWriter, r *http.Request) {
	driver := r.Context().Value(DriverInfoCtx).(*domain.Driver)
	grid := r.Context().Value(GridCtx).(*scheduler.Grid)

	entries, err := h.loadEntries(driver.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取司机排班成功", h.buildWeekView(grid, entries))
}

func (h *Handler) ReplaceMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)

	var req struct {
		Entries []struct {
			JobID   int64     `json:"jobID" validate:"required"`
			StartAt time.Time `json:"startAt" validate:"required"`
			EndAt   time.Time `json:"endAt" validate:"required"`
			Note    *string   `json:"note"`
		} `json:"entries" validate:"required,dive"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries := make([]domain.ScheduleEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, domain.ScheduleEntry{
			JobID:   e.JobID,
			StartAt: e.StartAt.UTC(),
			EndAt:   e.EndAt.UTC(),
			Note:    e.Note,
		})
	}

	if err := utils.ValidateScheduleEntries(entries, h.parameters.ResizePolicy); err != nil {
		h.badRequest(w, r, err)
		return
	}

	jobs, err := h.repository.GetJobsByDriverID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValidateEntriesWithJobs(entries, jobs); err != nil {
		h.badRequest(w, r, err)
		return
	}

	fallback, err := h.saveEntries(myInfo.ID, entries)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, saveMessage(fallback, "保存排班成功"), entries)
}

func (h *Handler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)

	jobs, err := h.repository.GetActiveJobsByDriverID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	entries, err := h.loadEntries(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	scheduled := scheduler.New(h.parameters, h.now).Schedule(jobs, entries)
	if len(scheduled) == len(entries) {
		// 所有任务都已经有排班，不需要写入
		h.successResponse(w, r, "没有需要排班的任务", scheduled)
		return
	}

	fallback, err := h.saveEntries(myInfo.ID, scheduled)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, saveMessage(fallback, "自动排班成功"), scheduled)
}

func (h *Handler) AddScheduleEntry(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)

	var req struct {
		JobID int64   `json:"jobID" validate:"required"`
		Date  string  `json:"date" validate:"required"`
		Note  *string `json:"note"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, err := utils.ParseDate(req.Date, h.parameters.Location)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	jobs, err := h.repository.GetJobsByDriverID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	entries, err := h.loadEntries(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	existing := len(entries)
	entries, entry := h.parameters.AddEntry(entries, req.JobID, day, req.Note)
	if err := utils.ValidateEntriesWithJobs([]domain.ScheduleEntry{entry}, jobs); err != nil {
		h.errorResponse(w, r, "任务不存在")
		return
	}
	// 只检查新条目的联合键，已有条目按保存时的策略处理
	if scheduler.FindEntry(entries[:existing], entry.JobID, entry.StartAt) >= 0 {
		h.errorResponse(w, r, "该任务在这个时间已经有排班")
		return
	}

	fallback, err := h.saveEntries(myInfo.ID, entries)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, saveMessage(fallback, "添加排班成功"), entry)
}

func (h *Handler) DeleteScheduleEntry(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)

	var req struct {
		JobID   int64     `json:"jobID" validate:"required"`
		StartAt time.Time `json:"startAt" validate:"required"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.loadEntries(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	entries, removed := scheduler.RemoveEntry(entries, req.JobID, req.StartAt)
	if !removed {
		h.errorResponse(w, r, "排班条目不存在")
		return
	}

	fallback, err := h.saveEntries(myInfo.ID, entries)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, saveMessage(fallback, "删除排班成功"), nil)
}

func (h *Handler) ApplyScheduleGesture(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)

	var req struct {
		JobID   int64     `json:"jobID" validate:"required"`
		StartAt time.Time `json:"startAt" validate:"required"`
		Kind    string    `json:"kind" validate:"required"`
		X       float64   `json:"x" validate:"gte=0"`
		Y       float64   `json:"y" validate:"gte=0"`
		Width   float64   `json:"width" validate:"gt=0"`
		Height  float64   `json:"height" validate:"gt=0"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	kind, err := scheduler.ParseGestureKind(req.Kind)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.loadEntries(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	idx := scheduler.FindEntry(entries, req.JobID, req.StartAt)
	if idx < 0 {
		h.errorResponse(w, r, "排班条目不存在")
		return
	}

	// 以条目所在的周作为坐标系
	grid := h.parameters.NewGrid(entries[idx].StartAt)
	gesture := grid.BeginGesture(entries[idx], kind)
	entries[idx] = grid.ApplyGesture(gesture, grid.CellAt(req.X, req.Y, req.Width, req.Height), h.parameters.ResizePolicy)

	if err := utils.ValidateScheduleEntries(entries, h.parameters.ResizePolicy); err != nil {
		h.badRequest(w, r, err)
		return
	}

	fallback, err := h.saveEntries(myInfo.ID, entries)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, saveMessage(fallback, "调整排班成功"), entries[idx])
}
