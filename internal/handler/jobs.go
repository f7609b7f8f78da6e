package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

type jobView struct {
	*domain.Job
	EstimatedHours float64 `json:"estimatedHours"`
}

func (h *Handler) GetMyJobs(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Driver)

	jobs, err := h.repository.GetActiveJobsByDriverID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, jobView{
			Job:            job,
			EstimatedHours: h.parameters.EstimateHours(job.Miles()),
		})
	}

	h.successResponse(w, r, "获取任务列表成功", views)
}
