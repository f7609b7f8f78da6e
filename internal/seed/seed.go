package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/repository"
)

// JobHeaders 是导入文件必须包含的列，distance 和 status 可以为空
var JobHeaders = []string{"title", "company", "vehicle", "distance", "status"}

// ParseJobsCSV 读取任务表格，所有任务都分配给 driverID
func ParseJobsCSV(reader io.Reader, driverID int64) ([]*domain.Job, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	// 读取表头
	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}
	for _, key := range JobHeaders {
		if !slices.Contains(headers, key) {
			return nil, fmt.Errorf("没有找到列 %q", key)
		}
	}

	jobs := make([]*domain.Job, 0)
	for line := 2; ; line++ {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("读取第 %d 行失败: %w", line, err)
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = strings.TrimSpace(value)
		}

		job := &domain.Job{
			Status:   domain.JobStatusAccepted,
			Title:    record["title"],
			Company:  record["company"],
			Vehicle:  record["vehicle"],
			DriverID: &driverID,
		}

		if s := record["status"]; s != "" {
			job.Status = domain.JobStatus(s)
		}

		// 距离无法解析时视为未知
		if s := record["distance"]; s != "" {
			if distance, err := strconv.ParseFloat(s, 64); err == nil && distance >= 0 {
				job.Distance = &distance
			}
		}

		if job.Title == "" {
			return nil, fmt.Errorf("第 %d 行缺少任务标题", line)
		}

		jobs = append(jobs, job)
	}

	return jobs, nil
}

func SeedJobsFromCSV(r *repository.Repository, path string, driverID int64) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	jobs, err := ParseJobsCSV(file, driverID)
	if err != nil {
		slog.Error("解析文件失败", "error", err)
		return
	}

	cnt := 0
	for _, job := range jobs {
		if err := r.CreateJob(job); err != nil {
			slog.Error("插入任务失败", "title", job.Title, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("导入任务成功", "count", cnt, "total", len(jobs))
}
